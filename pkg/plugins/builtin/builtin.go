// Package builtin registers the command and middleware factories compiled
// into switchboard. Import it for its side effects:
//
//	import _ "github.com/platinummonkey/switchboard/pkg/plugins/builtin"
package builtin

import (
	"github.com/platinummonkey/switchboard/pkg/plugins"
)

// Factory names, as referenced from entrypoint.yaml
const (
	FactoryPing  = "ping"
	FactoryEcho  = "echo"
	FactoryHelp  = "help"
	FactoryAuth  = "auth"
	FactoryAudit = "audit"
)

func init() {
	Register(plugins.DefaultCatalog())
}

// Register adds the built-in factories to catalog. The default catalog is
// populated automatically; tests use this to fill a private catalog.
func Register(catalog *plugins.Catalog) {
	for name, factory := range map[string]plugins.Factory{
		FactoryPing:  NewPing,
		FactoryEcho:  NewEcho,
		FactoryHelp:  NewHelp,
		FactoryAuth:  NewAuth,
		FactoryAudit: NewAudit,
	} {
		if catalog.Has(name) {
			continue
		}
		if err := catalog.Register(name, factory); err != nil {
			panic(err)
		}
	}
}
