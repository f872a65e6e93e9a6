package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/starkmini/starkmini/logger"
	"github.com/starkmini/starkmini/pkg/starkmini"
)

var (
	fVerbose     bool
	fModulus     uint64
	fTraceLength int
	fBlowup      int
	fQueries     int
	fHash        string
	fTamper      int
	fOut         string
)

var rootCmd = &cobra.Command{
	Use:   "starkmini-prover",
	Short: "prove and verify hand-checkable STARK claims over small prime fields",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if fVerbose {
			level = zerolog.DebugLevel
		}
		logger.Set(logger.Logger().Level(level))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&fVerbose, "verbose", "v", false, "log every pipeline stage")
	rootCmd.PersistentFlags().Uint64Var(&fModulus, "modulus", 97, "prime field modulus")
	rootCmd.PersistentFlags().IntVar(&fTraceLength, "trace-length", 8, "trace steps, must be a power of two")
	rootCmd.PersistentFlags().IntVar(&fBlowup, "blowup", 2, "LDE blowup factor, must be a power of two")
	rootCmd.PersistentFlags().IntVar(&fQueries, "queries", 5, "sampled indices per proof")
	rootCmd.PersistentFlags().StringVar(&fHash, "hash", "sha3-256", "commitment hash (sha3-256 or sha-256)")
}

func cliParams() *starkmini.Params {
	return starkmini.DefaultParams().
		WithModulus(fModulus).
		WithTraceLength(fTraceLength).
		WithBlowup(fBlowup).
		WithQueries(fQueries).
		WithHashFunction(fHash)
}

// runProgram drives the full pipeline for one bundled program: render the
// trace, prove, optionally persist the proof, then verify the result under
// the matching claim.
func runProgram(trace *starkmini.Trace, constraint starkmini.Constraint) {
	if fTamper >= 0 {
		tampered, err := tamperTrace(trace, fTamper)
		if err != nil {
			fail(err)
		}
		trace = tampered
		log := logger.Logger()
		log.Warn().Int("step", fTamper).Msg("trace row corrupted before proving")
	}

	if err := starkmini.RenderTrace(os.Stdout, trace); err != nil {
		fail(err)
	}
	fmt.Println()

	start := time.Now()
	proof, err := starkmini.Prove(cliParams(), trace, constraint)
	if err != nil {
		fail(err)
	}
	log := logger.Logger()
	log.Info().Msg("Successfully created proof, time: " + time.Since(start).String())

	encoded := proof.Bytes()
	fmt.Printf("proof: %d bytes, %d queries, %d FRI rounds\n", len(encoded), proof.Queries, proof.Rounds())

	if fOut != "" {
		if err := os.WriteFile(fOut, encoded, 0o644); err != nil {
			fail(err)
		}
		fmt.Printf("proof written to %s\n", fOut)
	}

	degree := fTraceLength - constraint.Arity()
	printVerdict(starkmini.Verify(proof, fTraceLength, degree))
}

// tamperTrace adds one to the first column of the given row, producing a
// trace that no longer satisfies the transition rule around that step.
func tamperTrace(trace *starkmini.Trace, step int) (*starkmini.Trace, error) {
	if step < 0 || step >= trace.Length() {
		return nil, fmt.Errorf("tamper step %d outside the trace of length %d", step, trace.Length())
	}
	rows := make([][]*starkmini.FieldElement, trace.Length())
	for i := range rows {
		rows[i] = trace.Row(i)
	}
	rows[step][0] = rows[step][0].Add(trace.Field().One())
	return starkmini.NewTrace(trace.Field(), rows)
}

func printVerdict(result starkmini.Result) {
	if result.Accepted {
		fmt.Println("✅ proof accepted")
		return
	}
	fmt.Printf("❌ proof rejected: %s\n", result.Rejection)
	os.Exit(1)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
