package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/starkmini/starkmini/pkg/starkmini"
)

var (
	fProofPath string
	fDegree    int
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "check a stored proof against a claimed trace length and degree bound",
	Run:   runVerify,
}

func runVerify(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(fProofPath)
	if err != nil {
		fail(err)
	}
	proof, err := starkmini.DecodeProof(data)
	if err != nil {
		fail(err)
	}
	fmt.Printf("proof: %d bytes, modulus %d, trace %dx%d, %d queries\n",
		len(data), proof.Modulus, proof.TraceLength, proof.Columns, proof.Queries)

	printVerdict(starkmini.Verify(proof, fTraceLength, fDegree))
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&fProofPath, "proof", "", "path of the proof file to check")
	verifyCmd.Flags().IntVar(&fDegree, "degree", 5, "claimed composition degree bound (trace-length minus arity for the bundled programs)")
	verifyCmd.MarkFlagRequired("proof")
}
