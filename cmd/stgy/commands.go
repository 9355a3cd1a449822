package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/block"
)

func newDecodeCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "decode [code|-]",
		Short: "Decode a strategy code into its objects",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, _, err := newCodec(cmd)
			if err != nil {
				return err
			}
			code, err := readArg(cmd, args)
			if err != nil {
				return err
			}
			doc, err := codec.Decode(code)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), doc)
			}
			printDocument(cmd.OutOrStdout(), doc, colorOutput(cmd.OutOrStdout()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the document as JSON")
	return cmd
}

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [document.json|-]",
		Short: "Encode a JSON document into a strategy code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, logger, err := newCodec(cmd)
			if err != nil {
				return err
			}
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			data, err := readFile(cmd, path)
			if err != nil {
				return err
			}

			var doc stgy.Document
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("parsing document: %w", err)
			}
			logger.Debug("📄 Loaded document", "path", path, "objects", doc.Count())

			code, err := codec.Encode(&doc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}
	return cmd
}

func newSummaryCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "summary [code|-]",
		Short: "List object types and positions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, _, err := newCodec(cmd)
			if err != nil {
				return err
			}
			code, err := readArg(cmd, args)
			if err != nil {
				return err
			}
			sum, err := codec.Summarize(code)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), sum)
			}
			printSummary(cmd.OutOrStdout(), sum)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "analyze [code|-]",
		Short: "Show the header, object count and block offsets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, _, err := newCodec(cmd)
			if err != nil {
				return err
			}
			code, err := readArg(cmd, args)
			if err != nil {
				return err
			}
			a, err := codec.Analyze(code)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), a)
			}
			printAnalysis(cmd.OutOrStdout(), a)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the analysis as JSON")
	return cmd
}

func newHexdumpCmd() *cobra.Command {
	var start, length int
	cmd := &cobra.Command{
		Use:   "hexdump [code|-]",
		Short: "Dump the decoded binary as hex",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, _, err := newCodec(cmd)
			if err != nil {
				return err
			}
			code, err := readArg(cmd, args)
			if err != nil {
				return err
			}
			dump, err := codec.DumpHex(code, start, length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dump)
			return nil
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "First byte offset")
	cmd.Flags().IntVar(&length, "length", 256, "Number of bytes")
	return cmd
}

func newLocateCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "locate <block> [code|-]",
		Short: "Print the data offset of a block (Type, Layer, Coord, Angle, Size, Trans, ParamA..C, Footer)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := block.ParseKind(args[0])
			if err != nil {
				return err
			}
			codec, _, err := newCodec(cmd)
			if err != nil {
				return err
			}
			code, err := readArg(cmd, args[1:])
			if err != nil {
				return err
			}

			if count <= 0 {
				a, err := codec.Analyze(code)
				if err != nil {
					return err
				}
				count = a.Count
			}
			buf, err := codec.DecodeBinary(code)
			if err != nil {
				return err
			}
			off, err := codec.LocateBlock(buf, kind, count)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", kind, off)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 0, "Object count (derived from the code when omitted)")
	return cmd
}
