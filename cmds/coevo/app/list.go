package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mandelsoft/coevolution/cmds/coevo/scenarios"
)

type List struct {
	cmd *cobra.Command

	mainopts *Options
	output   string
}

type ScenarioInfo struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func NewList(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "list available scenarios",
		Args:  cobra.NoArgs,
	}

	c := &List{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run() }
	cmd.Flags().StringVarP(&c.output, "output", "o", "", "output format (text, yaml, json)")
	return cmd
}

func (c *List) Run() error {
	format := *c.mainopts.cfg.Output
	if c.output != "" {
		format = c.output
	}
	format, err := CheckOutput(format)
	if err != nil {
		return err
	}
	if format == OUTPUT_TEXT {
		PrintScenarios(c.cmd.OutOrStdout())
		return nil
	}

	var list []ScenarioInfo
	for _, s := range scenarios.List() {
		list = append(list, ScenarioInfo{s.Index, s.Name, s.Description})
	}
	data, err := Marshal(format, list)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.cmd.OutOrStdout(), "%s\n", string(data))
	return nil
}

func PrintScenarios(w io.Writer) {
	var fields [][]string
	for _, s := range scenarios.List() {
		fields = append(fields, []string{strconv.Itoa(s.Index), s.Name, s.Description})
	}
	PrintTable(w, []string{"INDEX", "NAME", "DESCRIPTION"}, fields)
}
