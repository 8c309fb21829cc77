package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var compileOnly string

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a handful of built-in example forms and print the emitted JS",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, ex := range compileExamples() {
			if compileOnly != "" && compileOnly != ex.name {
				continue
			}
			js, msgs, err := compileForm(ex.form)
			fmt.Printf("// %s: %s\n", ex.name, ex.form)
			for _, m := range msgs {
				fmt.Printf("//   %s\n", m.Data.Text)
			}
			if err != nil {
				fmt.Printf("//   error: %v\n\n", err)
				continue
			}
			fmt.Println(js)
			fmt.Println()
		}
		return nil
	},
}

func init() {
	compileCmd.Flags().StringVar(&compileOnly, "only", "", "compile only the named example")
	rootCmd.AddCommand(compileCmd)
}
