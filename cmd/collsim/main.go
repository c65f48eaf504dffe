package main

// collsim runs one collision simulation and prints the per-endpoint results.
// Parameters come from the defaults, then an optional yaml/json file named by
// -params, then any flags given explicitly on the command line.

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/iti/collsim"
)

func main() {
	logger := log.New(os.Stderr, "collsim: ", log.LstdFlags)
	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		logger.Print(err)
		if errors.Is(err, collsim.ErrInvalidConfig) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, logger *log.Logger) error {
	fs := flag.NewFlagSet("collsim", flag.ContinueOnError)
	paramsFile := fs.String("params", "", "yaml or json file of simulation parameters")
	numEndpts := fs.Int("endpts", 0, "number of endpoints")
	duration := fs.Int("duration", 0, "number of one-second ticks to simulate")
	pcktLen := fs.Int("pcktlen", 0, "packet size in bytes")
	pcktRate := fs.Float64("rate", 0, "packets per second per endpoint")
	threshold := fs.Int("threshold", 0, "packets an endpoint may hold before it collides")
	seed := fs.Uint64("seed", 0, "seed of the delay sampler")
	sampler := fs.String("sampler", collsim.SamplerUniform, "delay sampler, uniform or stream")
	pace := fs.Bool("pace", false, "pace the run to one tick per second")
	traceFile := fs.String("trace", "", "write collision events to this yaml or json file")
	reportFile := fs.String("report", "", "write the run report to this yaml or json file")
	quiet := fs.Bool("quiet", false, "do not log individual collisions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sp := collsim.DefaultSimParams()
	if *paramsFile != "" {
		var err error
		sp, err = collsim.LoadSimParams(*paramsFile)
		if err != nil {
			return err
		}
	}

	// explicit flags take precedence over the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "endpts":
			sp.NumEndpts = *numEndpts
		case "duration":
			sp.Duration = *duration
		case "pcktlen":
			sp.PcktLen = *pcktLen
		case "rate":
			sp.PcktRate = *pcktRate
		case "threshold":
			sp.CollisionThreshold = *threshold
		case "seed":
			sp.Seed = *seed
		case "sampler":
			sp.Sampler = *sampler
		case "pace":
			sp.Pace = *pace
		}
	})

	trace := collsim.CreateCollisionTrace(sp.ExpName, sp.NumEndpts, true)
	opts := []collsim.EngineOption{collsim.WithCollisionObserver(trace), collsim.WithTickObserver(trace)}
	if !*quiet {
		opts = append(opts, collsim.WithCollisionObserver(collsim.CreateLogObserver(logger)))
	}
	if sp.Pace {
		opts = append(opts, collsim.WithPacer(collsim.CreateRealTimePacer(0)))
	}

	eng, err := collsim.CreateEngine(sp, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	params := eng.Params()
	logger.Printf("simulating %d endpoints for %d ticks, %s delays",
		params.NumEndpts, params.Duration, params.Sampler)
	endpts, runErr := eng.Run(ctx)
	if runErr != nil {
		logger.Printf("run stopped early: %v", runErr)
	}

	if *traceFile != "" {
		if _, err := trace.WriteToFile(*traceFile); err != nil {
			return err
		}
	}

	report := collsim.BuildSimReport(&params, endpts, trace.Events, trace.TicksRun)
	if *reportFile != "" {
		if err := report.WriteToFile(*reportFile); err != nil {
			return err
		}
	}

	printReport(out, report)
	return runErr
}

// printReport writes the per-endpoint table followed by the network totals
func printReport(out io.Writer, report *collsim.SimReport) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "endpoint\tpackets\tcollisions\tavg delay (ms)\tinterval (s)\tloss rate\t")
	for _, er := range report.Endpts {
		lossRate := "undefined"
		if report.MetricsDefined {
			lossRate = fmt.Sprintf("%.4f", er.LossRate)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.3f\t%.3f\t%s\t\n",
			er.Name, er.PcktsRecvd, er.Collisions, er.AvgDelay, er.IntervalTime, lossRate)
	}
	_ = tw.Flush()

	if report.Partial {
		fmt.Fprintf(out, "partial run: %d of %d ticks simulated\n", report.Ticks, report.Params.Duration)
	}
	if report.MetricsDefined {
		fmt.Fprintf(out, "network throughput (bytes/second): %.3f\n", report.Throughput)
	} else {
		fmt.Fprintf(out, "network throughput (bytes/second): undefined (%s)\n", report.Undefined)
	}
	fmt.Fprintf(out, "collision events: %d\n", report.NumCollisions)
	if len(report.CollisionDomains) > 0 {
		fmt.Fprintf(out, "collision domains: %v\n", report.CollisionDomains)
	}
}
