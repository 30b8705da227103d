package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"pet-health/internal/domain/healthscore"

	"github.com/spf13/cobra"
)

var gapsJSON bool

var gapsCmd = &cobra.Command{
	Use:   "gaps [paths|globs...]",
	Short: "Lista las notificaciones por datos faltantes de cada snapshot",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGaps,
}

func init() {
	gapsCmd.Flags().BoolVar(&gapsJSON, "json", false, "Salida JSON (un arreglo de intents)")
	rootCmd.AddCommand(gapsCmd)
}

func runGaps(cmd *cobra.Command, args []string) error {
	paths, err := expandPaths(args)
	if err != nil {
		return err
	}

	// Los gaps no dependen de la fecha.
	results, err := scoreFiles(cmd.Context(), paths, time.Time{}, runtime.NumCPU())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if gapsJSON {
		all := make([]healthscore.NotificationIntent, 0)
		for _, r := range results {
			all = append(all, r.Gaps...)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}

	for _, r := range results {
		fmt.Fprintln(w, renderGaps(r))
	}
	return nil
}
