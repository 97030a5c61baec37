// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Provides the shared logger honoring --verbose and --quiet
package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

const banner = `
 ██████╗ ██████╗ ██╗   ██╗███╗   ██╗███████╗███████╗██╗
██╔════╝██╔═══██╗██║   ██║████╗  ██║██╔════╝██╔════╝██║
██║     ██║   ██║██║   ██║██╔██╗ ██║███████╗█████╗  ██║
██║     ██║   ██║██║   ██║██║╚██╗██║╚════██║██╔══╝  ██║
╚██████╗╚██████╔╝╚██████╔╝██║ ╚████║███████║███████╗███████╗
 ╚═════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═══╝╚══════╝╚══════╝╚══════╝`

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advisor",
		Short: "Legal assistant backend for content creators",
		Long: banner + `

Creator Counsel is a legal assistant for content creators: contract
simplification, content safety checks, invoice generation, and
retrieval-grounded answers about YouTube policy and creator law.

Run 'advisor serve' to start the HTTP backend, 'advisor index' to build
the knowledge base, or 'advisor ask' for a one-shot question.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewIndexCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// newLogger returns a logger honoring the global verbosity flags.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	switch {
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	case quiet:
		log.SetLevel(logrus.WarnLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
