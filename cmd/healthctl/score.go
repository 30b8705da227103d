package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"time"

	"pet-health/internal/domain/healthscore"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	flagNow   string
	flagJSON  bool
	flagWatch bool
	flagJobs  int
)

var scoreCmd = &cobra.Command{
	Use:   "score [paths|globs...]",
	Short: "Calcula score, etiqueta y estado sugerido de cada snapshot",
	Example: `  healthctl score pets/milo.yaml
  healthctl score 'pets/**/*.yaml' --now 2025-06-15
  healthctl score pets/ --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&flagNow, "now", "", "Fecha de referencia (RFC3339 o YYYY-MM-DD); por defecto la hora actual")
	scoreCmd.Flags().BoolVar(&flagJSON, "json", false, "Salida JSON")
	scoreCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Recalcular cuando cambie algún archivo")
	scoreCmd.Flags().IntVarP(&flagJobs, "jobs", "j", runtime.NumCPU(), "Archivos evaluados en paralelo")
	rootCmd.AddCommand(scoreCmd)
}

// result es la evaluación de un archivo.
type result struct {
	Path            string                           `json:"path"`
	PetID           string                           `json:"pet_id"`
	PetName         string                           `json:"pet_name"`
	Score           int                              `json:"score"`
	Label           healthscore.Label                `json:"health"`
	Components      []healthscore.ComponentScore     `json:"components"`
	StoredStatus    healthscore.PetStatus            `json:"stored_status"`
	SuggestedStatus healthscore.PetStatus            `json:"suggested_status"`
	StatusMismatch  bool                             `json:"status_mismatch"`
	Gaps            []healthscore.NotificationIntent `json:"gaps"`
}

func evaluate(path string, s healthscore.Snapshot, now time.Time) result {
	b := healthscore.Evaluate(s, now)
	suggested := healthscore.SuggestStatus(b.Score, s.Vaccines)
	return result{
		Path:            path,
		PetID:           s.Pet.ID,
		PetName:         s.Pet.Name,
		Score:           b.Score,
		Label:           healthscore.ResolveHealthLabel(b.Score),
		Components:      b.Components,
		StoredStatus:    s.Pet.Status,
		SuggestedStatus: suggested,
		StatusMismatch:  healthscore.DetectStatusMismatch(s.Pet.Status, suggested),
		Gaps:            healthscore.ComputeHealthGaps(s.Pet, s.Vaccines),
	}
}

// scoreFiles carga y evalúa los archivos en paralelo; el resultado respeta el
// orden de paths. El primer error cancela el resto.
func scoreFiles(ctx context.Context, paths []string, now time.Time, jobs int) ([]result, error) {
	if jobs <= 0 {
		jobs = 1
	}

	out := make([]result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := loadSnapshot(p)
			if err != nil {
				return err
			}
			out[i] = evaluate(p, s, now)
			cliLog.Debug("snapshot scored", map[string]any{"path": p, "score": out[i].Score})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// resolveNow: sin --now el reloj es el real, evaluado en cada pasada.
func resolveNow(flag string) (func() time.Time, error) {
	if flag == "" {
		return time.Now, nil
	}
	t, ok := healthscore.ParseDate(flag)
	if !ok {
		return nil, fmt.Errorf("--now %q: must be RFC3339 or YYYY-MM-DD", flag)
	}
	return func() time.Time { return t }, nil
}

func runScore(cmd *cobra.Command, args []string) error {
	clock, err := resolveNow(flagNow)
	if err != nil {
		return err
	}
	paths, err := expandPaths(args)
	if err != nil {
		return err
	}

	once := func() error {
		results, err := scoreFiles(cmd.Context(), paths, clock(), flagJobs)
		if err != nil {
			return err
		}
		return writeResults(cmd.OutOrStdout(), results, flagJSON)
	}

	if flagWatch {
		return watchAndRun(cmd.Context(), paths, once)
	}
	return once()
}

func writeResults(w io.Writer, results []result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		if _, err := fmt.Fprintln(w, renderResult(r)); err != nil {
			return err
		}
	}
	return nil
}
