// Command halcyon-transform assembles a transform-dialect script applying a
// registered pass to a payload anchor and prints it in generic form. Option
// presets for the pass are read from a YAML file, preserving document order.
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/halcyon-ir/halcyon/internal/ir"
	"github.com/halcyon-ir/halcyon/internal/passreg"
	"github.com/halcyon-ir/halcyon/internal/transform"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		passName    string
		anchor      string
		optionsFile string
		listPasses  bool
		verbosity   int
	)

	cmd := &cobra.Command{
		Use:   "halcyon-transform",
		Short: "Assemble and print a transform-dialect pass-application script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd, verbosity)
			registry := builtinPasses(log)

			if listPasses {
				for _, name := range registry.Names() {
					info, _ := registry.Lookup(name)
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n", info.Name, info.Version, info.Summary)
				}
				return nil
			}

			if _, ok := registry.Lookup(passName); !ok {
				return errors.Newf("unknown pass %q (see --list-passes)", passName)
			}

			var options transform.PassOptions
			if optionsFile != "" {
				var err error
				options, err = loadOptions(optionsFile)
				if err != nil {
					return err
				}
				log.V(1).Info("loaded option preset", "file", optionsFile, "count", len(options))
			}

			script, err := buildScript(passName, anchor, options)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ir.Print(script))
			return nil
		},
	}

	cmd.Flags().StringVar(&passName, "pass", "canonicalize", "registered pass to apply")
	cmd.Flags().StringVar(&anchor, "anchor", "", "payload operation name to anchor the pass at (default: any op)")
	cmd.Flags().StringVar(&optionsFile, "options", "", "YAML file of pass option presets")
	cmd.Flags().BoolVar(&listPasses, "list-passes", false, "list registered passes and exit")
	cmd.Flags().IntVarP(&verbosity, "verbosity", "v", 0, "debug logging verbosity")
	return cmd
}

func newLogger(cmd *cobra.Command, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		fmt.Fprintln(cmd.ErrOrStderr(), prefix, args)
	}, funcr.Options{Verbosity: verbosity})
}

// builtinPasses registers the pass names this tool accepts out of the box.
func builtinPasses(log logr.Logger) *passreg.Registry {
	registry := passreg.NewRegistry(passreg.WithLogger(log))
	for _, p := range []struct{ name, summary, version string }{
		{"canonicalize", "canonicalize operations and fold constants", "1.0.0"},
		{"cse", "eliminate common subexpressions", "1.0.0"},
		{"inline", "inline calls bottom-up across the module", "1.1.0"},
		{"sccp", "sparse conditional constant propagation", "0.9.0"},
		{"symbol-dce", "remove dead private symbols", "1.0.0"},
	} {
		if err := registry.Register(p.name, p.summary, p.version); err != nil {
			// Builtin names are unique and versions are literals.
			panic(err)
		}
	}
	return registry
}

// buildScript assembles a named sequence that applies the pass to the
// payload and yields the transformed handle.
func buildScript(passName, anchor string, options transform.PassOptions) (*ir.Operation, error) {
	ctx := ir.NewContext()
	if err := transform.RegisterDialect(ctx); err != nil {
		return nil, err
	}

	b := ir.NewBuilder(ctx)
	anyOp := transform.AnyOpType(ctx)
	seq, err := transform.NewNamedSequenceOp(b, "__transform_main",
		[]ir.Type{anyOp}, []ir.Type{anyOp})
	if err != nil {
		return nil, err
	}
	b.SetInsertionPoint(seq.Body())

	target := seq.BodyTarget()
	passTarget := target
	passResultType := ir.Type(anyOp)
	if anchor != "" {
		anchorType := transform.OperationType(ctx, anchor)
		cast, err := transform.NewCastOp(b, anchorType, target)
		if err != nil {
			return nil, err
		}
		passTarget = cast.Result()
		passResultType = anchorType
	}

	applied, err := transform.NewApplyRegisteredPassOp(b, passResultType, passTarget, passName, options)
	if err != nil {
		return nil, err
	}

	yielded := applied.Result()
	if anchor != "" {
		back, err := transform.NewCastOp(b, anyOp, yielded)
		if err != nil {
			return nil, err
		}
		yielded = back.Result()
	}
	if _, err := transform.NewYieldOp(b, yielded); err != nil {
		return nil, err
	}
	return seq.Operation(), nil
}

// loadOptions reads a YAML mapping of option presets, preserving the
// document's key order.
func loadOptions(path string) (transform.PassOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading options file")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.Newf("%s: expected a mapping of option names to values", path)
	}

	var options transform.PassOptions
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		value, err := decodeOptionValue(root.Content[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "%s: option %q", path, name)
		}
		options = append(options, transform.Opt(name, value))
	}
	return options, nil
}

// decodeOptionValue maps YAML scalars and sequences onto the closed set of
// pass-option value kinds.
func decodeOptionValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!bool":
			var v bool
			if err := node.Decode(&v); err != nil {
				return nil, err
			}
			return v, nil
		case "!!int":
			var v int64
			if err := node.Decode(&v); err != nil {
				return nil, err
			}
			return v, nil
		case "!!str":
			return node.Value, nil
		default:
			return nil, errors.Newf("unsupported scalar %s (floats and nulls are not valid pass options)", node.Tag)
		}
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, elem := range node.Content {
			v, err := decodeOptionValue(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		return nil, errors.New("expected a scalar or sequence")
	}
}
