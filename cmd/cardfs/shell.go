package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uicctools/cardfs/filesystem"
	"github.com/uicctools/cardfs/session"
	"github.com/uicctools/cardfs/sim"
	"github.com/uicctools/cardfs/transport/simcard"
)

func newShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run an interactive session against a simulated card",
		Long: `shell starts a read-eval-print loop over a card session. Navigation
commands (select, ls, pwd) are always available; read/update commands appear
and disappear with the selected file's variant, mirroring what a real card
would accept. Type help inside the shell for the current command set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			card := simcard.New()
			mf, err := buildTree(card)
			if err != nil {
				return err
			}
			if err := sim.SeedDemo(card); err != nil {
				return err
			}
			sh := newShell(cmd.OutOrStdout(), mf, card, cfg.PreferNames)
			return sh.run(cmd.InOrStdin())
		},
	}
}

// shell is the REPL state. It doubles as the session's Binder so the
// available command set follows the selection.
type shell struct {
	out         io.Writer
	sess        *session.Session
	preferNames bool
	// bound holds the file-variant commands currently offered, handed over
	// on every selection change.
	bound map[string]struct{}
}

func newShell(out io.Writer, mf *filesystem.MF, card *simcard.Card, preferNames bool) *shell {
	sh := &shell{out: out, preferNames: preferNames, bound: map[string]struct{}{}}
	sh.sess = session.New(mf, card, sh)
	sh.Bind(mf)
	return sh
}

func (sh *shell) Bind(f filesystem.File) {
	for _, op := range session.Operations(f) {
		sh.bound[op] = struct{}{}
	}
}

func (sh *shell) Unbind(f filesystem.File) {
	for _, op := range session.Operations(f) {
		delete(sh.bound, op)
	}
}

func (sh *shell) prompt() string {
	return "cardfs " + filesystem.PathString(sh.sess.Current(), sh.preferNames) + "> "
}

func (sh *shell) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(sh.out, sh.prompt())
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 {
			if fields[0] == "exit" || fields[0] == "quit" {
				return nil
			}
			if err := sh.dispatch(fields[0], fields[1:]); err != nil {
				fmt.Fprintln(sh.out, "error:", err)
			}
		}
		fmt.Fprint(sh.out, sh.prompt())
	}
	fmt.Fprintln(sh.out)
	return scanner.Err()
}

func (sh *shell) dispatch(cmd string, args []string) error {
	switch cmd {
	case "help":
		return sh.cmdHelp()
	case "select":
		return sh.cmdSelect(args)
	case "ls":
		return sh.cmdLs()
	case "pwd":
		fmt.Fprintln(sh.out, filesystem.PathString(sh.sess.Current(), sh.preferNames))
		return nil
	}
	if _, ok := sh.bound[cmd]; !ok {
		return fmt.Errorf("unknown command %q (type help)", cmd)
	}
	switch cmd {
	case "read_binary":
		return sh.cmdReadBinary(args)
	case "read_binary_decoded":
		return sh.cmdReadBinaryDecoded()
	case "update_binary":
		return sh.cmdUpdateBinary(args)
	case "update_binary_decoded":
		return sh.cmdUpdateBinaryDecoded(args)
	case "read_record":
		return sh.cmdReadRecord(args)
	case "read_record_decoded":
		return sh.cmdReadRecordDecoded(args)
	case "update_record":
		return sh.cmdUpdateRecord(args)
	case "update_record_decoded":
		return sh.cmdUpdateRecordDecoded(args)
	}
	return fmt.Errorf("unknown command %q (type help)", cmd)
}

func (sh *shell) cmdHelp() error {
	cmds := []string{"select <id>", "ls", "pwd", "help", "exit"}
	bound := make([]string, 0, len(sh.bound))
	for op := range sh.bound {
		bound = append(bound, op)
	}
	sort.Strings(bound)
	fmt.Fprintln(sh.out, "commands:", strings.Join(append(cmds, bound...), ", "))
	return nil
}

func (sh *shell) cmdSelect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: select <fid|name|aid|.|..>")
	}
	sw, err := sh.sess.Select(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "%s (sw %s)\n", filesystem.PathString(sh.sess.Current(), sh.preferNames), sw)
	return nil
}

func (sh *shell) cmdLs() error {
	names := filesystem.ReachableNames(sh.sess.Current())
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(sh.out, n)
	}
	return nil
}

func (sh *shell) cmdReadBinary(args []string) error {
	length, offset, err := lengthOffset(args)
	if err != nil {
		return err
	}
	data, _, err := sh.sess.ReadBinary(length, offset)
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, hex.EncodeToString(data))
	return nil
}

func (sh *shell) cmdReadBinaryDecoded() error {
	v, _, err := sh.sess.ReadBinaryDecoded()
	if err != nil {
		return err
	}
	return sh.printJSON(v)
}

func (sh *shell) cmdUpdateBinary(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: update_binary <hex> [offset]")
	}
	data, err := hex.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("bad hex %q: %w", args[0], err)
	}
	offset := 0
	if len(args) > 1 {
		if offset, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("bad offset %q: %w", args[1], err)
		}
	}
	_, sw, err := sh.sess.UpdateBinary(data, offset)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "sw %s\n", sw)
	return nil
}

func (sh *shell) cmdUpdateBinaryDecoded(args []string) error {
	v, err := parseJSONArg(args)
	if err != nil {
		return err
	}
	_, sw, err := sh.sess.UpdateBinaryDecoded(v)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "sw %s\n", sw)
	return nil
}

func (sh *shell) cmdReadRecord(args []string) error {
	rec, err := recordNumber(args)
	if err != nil {
		return err
	}
	data, _, err := sh.sess.ReadRecord(rec)
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, hex.EncodeToString(data))
	return nil
}

func (sh *shell) cmdReadRecordDecoded(args []string) error {
	rec, err := recordNumber(args)
	if err != nil {
		return err
	}
	v, _, err := sh.sess.ReadRecordDecoded(rec)
	if err != nil {
		return err
	}
	return sh.printJSON(v)
}

func (sh *shell) cmdUpdateRecord(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: update_record <rec> <hex>")
	}
	rec, err := recordNumber(args[:1])
	if err != nil {
		return err
	}
	data, err := hex.DecodeString(args[1])
	if err != nil {
		return fmt.Errorf("bad hex %q: %w", args[1], err)
	}
	_, sw, err := sh.sess.UpdateRecord(rec, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "sw %s\n", sw)
	return nil
}

func (sh *shell) cmdUpdateRecordDecoded(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: update_record_decoded <rec> <json>")
	}
	rec, err := recordNumber(args[:1])
	if err != nil {
		return err
	}
	v, err := parseJSONArg(args[1:])
	if err != nil {
		return err
	}
	_, sw, err := sh.sess.UpdateRecordDecoded(rec, v)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "sw %s\n", sw)
	return nil
}

func (sh *shell) printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, string(out))
	return nil
}

func lengthOffset(args []string) (length, offset int, err error) {
	if len(args) > 0 {
		if length, err = strconv.Atoi(args[0]); err != nil {
			return 0, 0, fmt.Errorf("bad length %q: %w", args[0], err)
		}
	}
	if len(args) > 1 {
		if offset, err = strconv.Atoi(args[1]); err != nil {
			return 0, 0, fmt.Errorf("bad offset %q: %w", args[1], err)
		}
	}
	return length, offset, nil
}

func recordNumber(args []string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("record number required")
	}
	rec, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("bad record number %q: %w", args[0], err)
	}
	return rec, nil
}

// parseJSONArg joins the remaining words back together so values with spaces
// survive the field split, then decodes them as JSON.
func parseJSONArg(args []string) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("json value required")
	}
	raw := strings.Join(args, " ")
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("bad json %q: %w", raw, err)
	}
	return v, nil
}
