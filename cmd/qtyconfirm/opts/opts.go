package opts

import (
	"github.com/rs/zerolog"
	"github.com/walteh/qtyconfirm/pkg/config"
	"github.com/walteh/qtyconfirm/pkg/log"
	"github.com/walteh/qtyconfirm/pkg/text"
)

// RootOpts contains shared options used by all commands. It is filled in by
// the root command's pre-run, after flags are parsed.
type RootOpts struct {
	Config     *config.Config
	Injector   *text.Injector
	Console    *log.Logger
	UserLogger *log.UserLogger
	Logger     *zerolog.Logger
	DryRun     bool
}
