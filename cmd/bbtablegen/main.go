// Command bbtablegen emits internal/bbit's process-wide lookup tables
// (popcount8, popcount16, lsb16, msb16, the De Bruijn index arrays) as a
// literal Go source file — the Design Note's preferred option (c),
// "compile-time tables where the language permits const arrays computed
// at compile time". The emitted variables carry a Generated suffix;
// tables.go does not read them and still builds its own tables in init().
package main

import (
	"bufio"
	"fmt"
	"math/bits"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var output string

	rootCmd := &cobra.Command{
		Use:   "bbtablegen",
		Short: "Emit internal/bbit's lookup tables as literal Go source",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				w = f
			}
			return generate(w)
		},
	}
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: stdout)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generate(w *os.File) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	fmt.Fprintln(bw, "// Code generated by bbtablegen. DO NOT EDIT.")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "package bbit")
	fmt.Fprintln(bw)

	writePopcount8(bw)
	writePopcount16(bw)
	writeLane16(bw, "lsb16Generated", true)
	writeLane16(bw, "msb16Generated", false)
	writeDeBruijn(bw)

	return bw.Flush()
}

func writePopcount8(bw *bufio.Writer) {
	fmt.Fprintln(bw, "var popcount8Generated = [256]uint8{")
	for b := 0; b < 256; b++ {
		fmt.Fprintf(bw, "\t%d,\n", bits.OnesCount8(uint8(b)))
	}
	fmt.Fprintln(bw, "}")
	fmt.Fprintln(bw)
}

func writePopcount16(bw *bufio.Writer) {
	fmt.Fprintln(bw, "var popcount16Generated = [65536]uint8{")
	for w := 0; w < 65536; w++ {
		fmt.Fprintf(bw, "\t%d,\n", bits.OnesCount16(uint16(w)))
	}
	fmt.Fprintln(bw, "}")
	fmt.Fprintln(bw)
}

// writeLane16 emits either the lsb or msb table over every 16-bit lane,
// using -1 for the zero word (noBit, inlined since this file is
// generated standalone and cannot import the unexported constant).
func writeLane16(bw *bufio.Writer, name string, lsb bool) {
	fmt.Fprintf(bw, "var %s = [65536]int8{\n", name)
	for w := 0; w < 65536; w++ {
		var v int
		switch {
		case w == 0:
			v = -1
		case lsb:
			v = bits.TrailingZeros16(uint16(w))
		default:
			v = 15 - bits.LeadingZeros16(uint16(w))
		}
		fmt.Fprintf(bw, "\t%d,\n", v)
	}
	fmt.Fprintln(bw, "}")
	fmt.Fprintln(bw)
}

func writeDeBruijn(bw *bufio.Writer) {
	const deBruijn64LSB = 0x07EDD5E59A4E28C2
	const deBruijn64MSB = 0x03f79d71b4cb0a89

	var idxLSB, idxMSB [64]uint8
	for i := 0; i < 64; i++ {
		bitPos := uint64(1) << uint(i)
		idxLSB[(bitPos*deBruijn64LSB)>>58] = uint8(i)

		v := ^uint64(0) >> uint(63-i) // all-ones run of length i+1
		idxMSB[(v*deBruijn64MSB)>>58] = uint8(i)
	}

	fmt.Fprintln(bw, "var deBruijnIndexLSBGenerated = [64]uint8{")
	for _, v := range idxLSB {
		fmt.Fprintf(bw, "\t%d,\n", v)
	}
	fmt.Fprintln(bw, "}")
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "var deBruijnIndexMSBGenerated = [64]uint8{")
	for _, v := range idxMSB {
		fmt.Fprintf(bw, "\t%d,\n", v)
	}
	fmt.Fprintln(bw, "}")
}
