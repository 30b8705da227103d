package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pet-health/internal/domain/healthscore"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Extensiones que se aceptan al expandir directorios y globs.
var snapshotExts = map[string]bool{".yaml": true, ".yml": true, ".json": true}

// expandPaths resuelve cada argumento a archivos de snapshot:
// un archivo tal cual, un directorio (recursivo) o un glob con "**".
// El resultado no tiene duplicados y respeta el orden de los argumentos.
func expandPaths(args []string) ([]string, error) {
	seen := map[string]bool{}
	out := make([]string, 0, len(args))
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, arg := range args {
		pattern := arg
		info, err := os.Stat(arg)
		switch {
		case err == nil && !info.IsDir():
			add(arg)
			continue
		case err == nil:
			pattern = filepath.Join(arg, "**", "*")
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", arg, err)
		}
		n := 0
		for _, m := range matches {
			if isSnapshotFile(m) {
				add(m)
				n++
			}
		}
		if n == 0 {
			return nil, fmt.Errorf("%s: no snapshot files", arg)
		}
	}
	return out, nil
}

func isSnapshotFile(path string) bool {
	return snapshotExts[strings.ToLower(filepath.Ext(path))]
}

// loadSnapshot lee un snapshot. Sin pet.id se usa el nombre del archivo,
// que también hace de prefijo en las claves de gaps.
func loadSnapshot(path string) (healthscore.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return healthscore.Snapshot{}, err
	}

	var s healthscore.Snapshot
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &s)
	} else {
		err = yaml.Unmarshal(data, &s)
	}
	if err != nil {
		return healthscore.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}

	if strings.TrimSpace(s.Pet.ID) == "" {
		s.Pet.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}
