package rules

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"selgen/config"
	"selgen/css"
	"selgen/serde"
	"selgen/state"
)

// Run implements the "build" subcommand: read a rule document, compile it
// and emit rendered selectors.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no rules document has been specified")
	}
	src, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, extra arguments", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read rules document: %w", err)
	}
	env.Rpt.StoreData("input/"+filepath.Base(src), data)

	doc, err := Load(data)
	if err != nil {
		return err
	}
	log.Debug("Loaded rules document", zap.String("source", src), zap.Int("rules", len(doc.Rules)))

	compiled, err := NewCompiler(log).Compile(doc)
	if err != nil {
		return err
	}

	out := env.Cfg.Output
	if cmd.IsSet("sort") {
		out.SortRules = cmd.Bool("sort")
	}
	if cmd.IsSet("format") {
		out.Format = cmd.String("format")
	}
	if out.SortRules {
		SortByName(compiled)
	}

	text, err := render(compiled, &out)
	if err != nil {
		return err
	}
	env.Rpt.StoreData("output/selectors."+out.Format, []byte(text))

	if len(out.Destination) > 0 {
		dir, base := filepath.Split(out.Destination)
		name := filepath.Join(dir, config.CleanFileName(base))
		if err := os.WriteFile(name, []byte(text), 0644); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
		log.Info("Wrote selectors", zap.String("destination", name), zap.Int("rules", len(compiled)))
		return nil
	}

	fmt.Print(text)
	return nil
}

// rendered is the serializable form of a compiled rule.
type rendered struct {
	Name        string `json:"name" yaml:"name"`
	Selector    string `json:"selector" yaml:"selector"`
	Specificity [3]int `json:"specificity" yaml:"specificity,flow"`
}

func render(list []Compiled, out *config.OutputConfig) (string, error) {
	switch out.Format {
	case "", "text":
		return RenderText(list, out.ShowSpecificity), nil
	case "json", "yaml":
		items := make([]rendered, 0, len(list))
		for _, c := range list {
			items = append(items, rendered{
				Name:        c.Name,
				Selector:    c.Render(),
				Specificity: c.Selector.Specificity(),
			})
		}
		if out.Format == "json" {
			return serde.Serialize(items)
		}
		data, err := yaml.Marshal(items)
		if err != nil {
			return "", fmt.Errorf("unable to render yaml: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", out.Format)
	}
}

// RunParse implements the "parse" subcommand: parse selector strings given
// as arguments and report their parts and specificity.
func RunParse(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("parse")

	if cmd.Args().Len() == 0 {
		return errors.New("no selectors have been specified")
	}

	p := css.NewParser(log)
	for _, text := range cmd.Args().Slice() {
		sel, err := p.ParseSelector(text)
		if err != nil {
			return fmt.Errorf("unable to parse %q: %w", text, err)
		}
		sp := sel.Specificity()
		fmt.Printf("%s\t(specificity %d,%d,%d)\n", sel, sp[0], sp[1], sp[2])
	}
	return nil
}
