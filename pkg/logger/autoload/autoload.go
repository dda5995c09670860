// Package autoload initializes the global logger from LOG_* environment
// variables as a side effect of being imported.
package autoload

import (
	configx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/pkg/config"
	logx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
