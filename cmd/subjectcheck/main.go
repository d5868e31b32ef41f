package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"transcriptcli/internal/dataprocessing"
)

// subjectcheck resolves raw subject labels against the canonical catalog and
// prints how each one matched. Labels come from the arguments, or from stdin
// one per line when no arguments are given.
func main() {
	admissionYear := flag.Int("year", 0, "admission year selecting the curriculum revision (0 uses the default revision)")
	threshold := flag.Float64("threshold", 0.70, "minimum similarity for a fuzzy match")
	flag.Parse()

	labels := flag.Args()
	if len(labels) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				labels = append(labels, line)
			}
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to read stdin: %v\n", err)
			os.Exit(1)
		}
	}
	if len(labels) == 0 {
		fmt.Fprintln(os.Stderr, "no subject labels given")
		os.Exit(1)
	}

	subjects := dataprocessing.NewSubjectMapping(*threshold)
	revision := dataprocessing.CurriculumRevision(*admissionYear)
	fmt.Printf("curriculum revision: %d\n", revision)

	for _, label := range labels {
		match := subjects.Normalize(revision, label)
		fmt.Printf("%s\t-> %s\tgroup=%s\ttier=%s\tscore=%.4f\n",
			label, match.Canonical, match.Group, match.Tier, match.Score)
	}
}
