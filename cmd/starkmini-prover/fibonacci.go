package main

import (
	"github.com/spf13/cobra"

	"github.com/starkmini/starkmini/pkg/starkmini"
)

// fibonacciCmd represents the fibonacci command
var fibonacciCmd = &cobra.Command{
	Use:   "fibonacci",
	Short: "prove that a Fibonacci trace satisfies f(n+2) = f(n+1) + f(n)",
	Run:   runFibonacci,
}

func runFibonacci(cmd *cobra.Command, args []string) {
	field, err := starkmini.NewField(fModulus)
	if err != nil {
		fail(err)
	}
	trace, err := starkmini.FibonacciTrace(field, fTraceLength)
	if err != nil {
		fail(err)
	}
	runProgram(trace, starkmini.FibonacciConstraint())
}

func init() {
	rootCmd.AddCommand(fibonacciCmd)
	fibonacciCmd.Flags().IntVar(&fTamper, "tamper", -1, "corrupt this trace row before proving")
	fibonacciCmd.Flags().StringVar(&fOut, "out", "", "write the proof bytes to this file")
}
