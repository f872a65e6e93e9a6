package main

import (
	"github.com/spf13/cobra"

	"github.com/starkmini/starkmini/pkg/starkmini"
)

// squareFibonacciCmd represents the square-fibonacci command
var squareFibonacciCmd = &cobra.Command{
	Use:   "square-fibonacci",
	Short: "prove that a square-Fibonacci trace satisfies f(n+2) = f(n+1)^2 + f(n)^2",
	Run:   runSquareFibonacci,
}

func runSquareFibonacci(cmd *cobra.Command, args []string) {
	field, err := starkmini.NewField(fModulus)
	if err != nil {
		fail(err)
	}
	trace, err := starkmini.SquareFibonacciTrace(field, fTraceLength)
	if err != nil {
		fail(err)
	}
	runProgram(trace, starkmini.SquareFibonacciConstraint())
}

func init() {
	rootCmd.AddCommand(squareFibonacciCmd)
	squareFibonacciCmd.Flags().IntVar(&fTamper, "tamper", -1, "corrupt this trace row before proving")
	squareFibonacciCmd.Flags().StringVar(&fOut, "out", "", "write the proof bytes to this file")
}
