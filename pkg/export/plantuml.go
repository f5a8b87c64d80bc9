package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

const (
	// DefaultPlantUMLCommand is the command used when none is configured.
	DefaultPlantUMLCommand = "plantuml"

	// DefaultLimitSize caps the pixel size of generated images.
	DefaultLimitSize = 10000
)

// PlantUML renders PlantUML text by piping it through the external plantuml
// command line tool.
//
// Requires PlantUML and Graphviz: brew install plantuml (macOS),
// apt install plantuml (Linux).
type PlantUML struct {
	// Command is the program and leading arguments, e.g. ["plantuml"] or
	// ["java", "-jar", "/opt/plantuml.jar"]. Empty uses DefaultPlantUMLCommand.
	Command []string

	// LimitSize is passed as PLANTUML_LIMIT_SIZE. Zero uses DefaultLimitSize.
	LimitSize int
}

// Render runs plantuml in pipe mode and returns the image bytes.
func (p PlantUML) Render(ctx context.Context, text string, f Format) ([]byte, error) {
	command := p.Command
	if len(command) == 0 {
		command = []string{DefaultPlantUMLCommand}
	}
	if _, err := exec.LookPath(command[0]); err != nil {
		return nil, fmt.Errorf("%s export requires %s. Install with:\n  macOS:  brew install plantuml\n  Linux:  apt install plantuml", f, command[0])
	}

	limit := p.LimitSize
	if limit <= 0 {
		limit = DefaultLimitSize
	}

	args := append(append([]string{}, command[1:]...), "-pipe", "-charset", "UTF-8", "-t"+f.String())
	cmd := exec.CommandContext(ctx, command[0], args...)
	cmd.Env = append(os.Environ(), "PLANTUML_LIMIT_SIZE="+strconv.Itoa(limit))
	cmd.Stdin = bytes.NewReader([]byte(text))

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", command[0], err, errBuf.String())
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("%s produced no output", command[0])
	}
	return out.Bytes(), nil
}
