package main

import "errors"

var (
	// ErrInvalidOption indicates a flag value this command does not
	// recognize, matching the teacher's own cmd-layer error.
	ErrInvalidOption = errors.New("invalid option")
	// ErrReadInput indicates an input file could not be read.
	ErrReadInput = errors.New("reading input")
	// ErrWriteOutput indicates the rendered artifact could not be written.
	ErrWriteOutput = errors.New("writing output")
)
