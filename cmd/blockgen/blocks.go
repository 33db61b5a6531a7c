package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/helixml/blockgen/application/service"
	"github.com/helixml/blockgen/domain/block"
	"github.com/spf13/cobra"
)

func blocksCmd() *cobra.Command {
	var (
		genus  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List the blocks a program can use",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig("")
			if err != nil {
				return err
			}
			client, logger, err := newClient(cfg)
			if err != nil {
				return err
			}
			defer closeClient(client, logger)

			blocks, err := filterGenus(client.Blocks(), genus)
			if err != nil {
				return err
			}
			if asJSON {
				return writeBlocksJSON(cmd.OutOrStdout(), blocks)
			}
			return writeBlocksTable(cmd.OutOrStdout(), blocks)
		},
	}

	cmd.Flags().StringVar(&genus, "genus", "", "Only list blocks of this genus (value, command)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

func filterGenus(blocks []service.BlockInfo, genus string) ([]service.BlockInfo, error) {
	if genus == "" {
		return blocks, nil
	}
	g := block.Genus(strings.ToLower(genus))
	if g != block.GenusValue && g != block.GenusCommand {
		return nil, fmt.Errorf("unknown genus %q: want value or command", genus)
	}
	var filtered []service.BlockInfo
	for _, b := range blocks {
		if b.Genus() == g {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

func writeBlocksTable(w io.Writer, blocks []service.BlockInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tGENUS\tTYPE\tSOCKETS\tLABEL")
	for _, b := range blocks {
		valueType := string(b.ValueType())
		if valueType == "" {
			valueType = "-"
		}
		sockets := strings.Join(b.Sockets(), ",")
		if sockets == "" {
			sockets = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", b.Name(), b.Genus(), valueType, sockets, b.Label())
	}
	return tw.Flush()
}

type blockJSON struct {
	Name       string   `json:"name"`
	Label      string   `json:"label"`
	Genus      string   `json:"genus"`
	ValueType  string   `json:"value_type,omitempty"`
	Template   string   `json:"template,omitempty"`
	Sockets    []string `json:"sockets,omitempty"`
	Structural bool     `json:"structural"`
}

func writeBlocksJSON(w io.Writer, blocks []service.BlockInfo) error {
	out := make([]blockJSON, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, blockJSON{
			Name:       b.Name(),
			Label:      b.Label(),
			Genus:      string(b.Genus()),
			ValueType:  string(b.ValueType()),
			Template:   b.Template(),
			Sockets:    b.Sockets(),
			Structural: b.Structural(),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
