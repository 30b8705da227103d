// Command healthctl calcula el Pet Health Score sobre snapshots locales
// (YAML o JSON) sin levantar la API ni tocar la base.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pet-health/internal/platform/logger"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	cliLog  = logger.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "healthctl",
	Short: "Pet Health Score sobre archivos de snapshot",
	Long: `healthctl evalúa snapshots de mascotas (perfil, vacunas, medicación e historial)
con las mismas reglas que la API: score 0-100, etiqueta, estado sugerido y gaps.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logger.Warn
		if verbose {
			level = logger.Debug
		}
		cliLog = logger.New(logger.Options{Level: level, App: "healthctl", Stderr: true})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Logs de depuración en stderr")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	logger.Sync(cliLog)
	if err != nil {
		os.Exit(1)
	}
}
