package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a top-down tile grid in the XZ plane. Cells that are non-zero on
// a physics layer become solid walls.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	SpawnX    int         `json:"spawn_x"`
	SpawnZ    int         `json:"spawn_z"`
	SpawnYaw  float64     `json:"spawn_yaw,omitempty"`
	FloorY    float64     `json:"floor_y,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

// Cell is a grid coordinate.
type Cell struct {
	X int
	Z int
}

func LoadLevelFromFS(name string) (*Level, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return ParseLevel(data)
}

func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("level has invalid size %dx%d", lvl.Width, lvl.Height)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("layer %d has %d cells, want %d", i, len(layer), lvl.Width*lvl.Height)
		}
	}
	return &lvl, nil
}

// SolidCells lists every wall cell across physics layers.
func (l *Level) SolidCells() []Cell {
	if l == nil {
		return nil
	}
	seen := make(map[Cell]bool)
	var out []Cell
	for i, layer := range l.Layers {
		if i >= len(l.LayerMeta) || !l.LayerMeta[i].Physics {
			continue
		}
		for idx, v := range layer {
			if v == 0 {
				continue
			}
			c := Cell{X: idx % l.Width, Z: idx / l.Width}
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}
