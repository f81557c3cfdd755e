package ioadapter

import "os"

// Stdin returns a Reader over the process's standard input.
func Stdin() *FileReader { return NewFileReader(os.Stdin) }

// Stdout returns a Writer over the process's standard output.
func Stdout() *File { return NewFile(os.Stdout) }
