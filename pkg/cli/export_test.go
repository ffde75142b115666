package cli

var RunWithWriters = run
