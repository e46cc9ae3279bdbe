package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uicctools/cardfs/filesystem"
)

func newTreeCommand() *cobra.Command {
	var showFIDs bool
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the card filesystem tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			mf, err := buildTree(nil)
			if err != nil {
				return err
			}
			printTree(cmd, mf, 0, showFIDs)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showFIDs, "fids", false, "Show file identifiers next to names")
	return cmd
}

func printTree(cmd *cobra.Command, f filesystem.File, depth int, showFIDs bool) {
	label := f.Name()
	if label == "" {
		label = f.FID()
	} else if showFIDs && f.FID() != "" {
		label = fmt.Sprintf("%s [%s]", label, f.FID())
	}
	line := strings.Repeat("  ", depth) + label
	if desc := f.Description(); desc != "" {
		line += "  " + desc
	}
	cmd.Println(line)

	dir, ok := f.(filesystem.Dir)
	if !ok {
		return
	}
	for _, child := range dir.Children() {
		printTree(cmd, child, depth+1, showFIDs)
	}
	if mf, ok := f.(*filesystem.MF); ok {
		for _, app := range mf.Applications() {
			if _, attached := mf.Child(app.FID()); attached {
				continue
			}
			printTree(cmd, app, depth+1, showFIDs)
		}
	}
}
