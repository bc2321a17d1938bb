package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"reflect"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mickamy/insightful"
)

// Test is the misbehaving type the scenarios observe.
type Test struct {
	Value   int
	Useless int
	Name    string
}

func (t *Test) String() string {
	return fmt.Sprintf("Test(%s)", t.Name)
}

func (t *Test) Test() int {
	return 1
}

var errOhNo = errors.New("Oh No!")

func (t *Test) Whoops(arg int) error {
	return errOhNo
}

// Property calls back through its proxy so the inner calls are observed too.
func (t *Test) Property(ctx context.Context) (int, error) {
	self := insightful.ProxyFrom(ctx)
	out, err := self.Call(ctx, "Test")
	if err != nil {
		return 0, err
	}
	v, err := self.Get("Value")
	if err != nil {
		return 0, err
	}
	if _, err := self.Call(ctx, "Whoops", v); err != nil {
		return 0, err
	}
	return out[0].(int), nil
}

var flags struct {
	example          int
	config           string
	prefix           string
	showMethodAccess bool
	callStart        bool
	summary          bool
	color            bool
	zap              bool
	noCalls          bool
	noAccess         bool
	noAssignment     bool
	noDeletion       bool
}

var rootCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the insightful scenarios against a sample type",
	Long: `demo observes a small sample type with insightful and prints every
interaction: field reads, writes and deletions, method calls and failures.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, cleanup, err := options(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		scenarios := []func(context.Context, []insightful.Option) error{example1, example2, example3, example4}
		if flags.example < 0 || flags.example > len(scenarios) {
			return fmt.Errorf("unknown example %d", flags.example)
		}
		ctx := cmd.Context()
		for n, run := range scenarios {
			if flags.example != 0 && flags.example != n+1 {
				continue
			}
			if n > 0 && flags.example == 0 {
				fmt.Println()
			}
			fmt.Printf("Example %d\n", n+1)
			if err := run(ctx, opts); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	f := rootCmd.Flags()
	f.IntVarP(&flags.example, "example", "e", 0, "run a single example (1-4), 0 runs all")
	f.StringVarP(&flags.config, "config", "c", getenv("INSIGHTFUL_CONFIG", ""), "YAML configuration file")
	f.StringVar(&flags.prefix, "prefix", insightful.DefaultPrefix, "prefix of every line")
	f.BoolVar(&flags.showMethodAccess, "show-method-access", false, "log reads of methods, not only calls")
	f.BoolVar(&flags.callStart, "call-start", false, "log calls before they run")
	f.BoolVar(&flags.summary, "summary", false, "print a tally when each scope exits")
	f.BoolVar(&flags.color, "color", false, "color the prefix")
	f.BoolVar(&flags.zap, "zap", false, "send lines to a zap development logger")
	f.BoolVar(&flags.noCalls, "no-calls", false, "do not log method calls")
	f.BoolVar(&flags.noAccess, "no-access", false, "do not log field reads")
	f.BoolVar(&flags.noAssignment, "no-assignment", false, "do not log field writes")
	f.BoolVar(&flags.noDeletion, "no-deletion", false, "do not log field deletions")
}

// options builds the Insight options from the config file and the flags set on cmd.
func options(cmd *cobra.Command) ([]insightful.Option, func(), error) {
	cfg := insightful.DefaultConfig()
	if flags.config != "" {
		loaded, err := insightful.LoadConfig(flags.config)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("prefix") {
		cfg.Prefix = flags.prefix
	}
	if changed("show-method-access") {
		cfg.ShowMethodAccess = flags.showMethodAccess
	}
	if changed("call-start") {
		cfg.CallStart = flags.callStart
	}
	if changed("summary") {
		cfg.Summary = flags.summary
	}
	if changed("color") {
		cfg.Color = flags.color
	}
	if changed("no-calls") {
		cfg.FunctionCalls = !flags.noCalls
	}
	if changed("no-access") {
		cfg.AttributeAccess = !flags.noAccess
	}
	if changed("no-assignment") {
		cfg.AttributeAssignment = !flags.noAssignment
	}
	if changed("no-deletion") {
		cfg.AttributeDeletion = !flags.noDeletion
	}

	opts := []insightful.Option{insightful.WithConfig(cfg), insightful.WithParams("Whoops(arg)")}
	cleanup := func() {}
	if flags.zap {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build zap logger: %w", err)
		}
		opts = append(opts, insightful.WithPrinter(insightful.ZapPrinter(logger)))
		cleanup = func() {
			_ = logger.Sync()
		}
	}
	return slices.Clip(opts), cleanup, nil
}

// example1 shows a read and write, a call, a deletion and a failing nested call.
func example1(ctx context.Context, opts []insightful.Option) error {
	test := insightful.MustObserve(&Test{})
	err := insightful.New(reflect.TypeFor[Test](), opts...).Run(func() error {
		if err := test.Update("Value", func(v any) any { return v.(int) + 1 }); err != nil {
			return err
		}
		if _, err := test.Call(ctx, "Test"); err != nil {
			return err
		}
		if err := test.Delete("Useless"); err != nil {
			return err
		}
		_, err := test.Call(ctx, "Property")
		return err
	})
	if err != nil && !errors.Is(err, errOhNo) {
		return err
	}
	return nil
}

// example2 observes a whole type, then a single instance.
func example2(_ context.Context, opts []insightful.Option) error {
	a := insightful.MustObserve(&Test{Name: "a"})
	b := insightful.MustObserve(&Test{Name: "b"})
	readBoth := func() error {
		if _, err := a.Get("Value"); err != nil {
			return err
		}
		_, err := b.Get("Value")
		return err
	}

	fmt.Println("All Test()s:")
	if err := insightful.New(reflect.TypeFor[Test](), opts...).Run(readBoth); err != nil {
		return err
	}
	fmt.Println("Only Test(a)s:")
	return insightful.New(a, append(opts, insightful.InstanceOnly())...).Run(readBoth)
}

// example3 shows that only methods looked up inside the scope are logged, and only
// while the scope is active.
func example3(ctx context.Context, opts []insightful.Option) error {
	test := insightful.MustObserve(&Test{})
	wontWork, err := test.Method("Test")
	if err != nil {
		return err
	}
	var willWork *insightful.Method
	err = insightful.New(reflect.TypeFor[Test](), opts...).Run(func() error {
		var err error
		if willWork, err = test.Method("Test"); err != nil {
			return err
		}
		if _, err := wontWork.Call(ctx); err != nil {
			return err
		}
		_, err = willWork.Call(ctx)
		return err
	})
	if err != nil {
		return err
	}
	_, err = willWork.Call(ctx)
	return err
}

// example4 compares logging with and without method reads.
func example4(ctx context.Context, opts []insightful.Option) error {
	test := insightful.MustObserve(&Test{})
	body := func() error {
		if _, err := test.Method("Test"); err != nil {
			return err
		}
		_, err := test.Call(ctx, "Test")
		return err
	}

	fmt.Println("Without showing method access:")
	if err := insightful.New(reflect.TypeFor[Test](), opts...).Run(body); err != nil {
		return err
	}
	fmt.Println("Showing method access:")
	return insightful.New(reflect.TypeFor[Test](), append(opts, insightful.WithShowMethodAccess(true))...).Run(body)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("demo: %v", err)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
