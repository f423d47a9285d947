package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/eon-protocol/eonvm"
	"github.com/eon-protocol/eonvm/accounts"
	"github.com/eon-protocol/eonvm/plaintext"
	"github.com/eon-protocol/eonvm/srs"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "account keys",
}

var accountNewCmd = &cobra.Command{
	Use:   "new",
	Short: "generate a private key and print its view key and address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sk, err := accounts.NewPrivateKey(rand.Reader)
		if err != nil {
			return err
		}
		fmt.Println("private key:", sk)
		fmt.Println("view key:   ", sk.ViewKey())
		fmt.Println("address:    ", sk.Address())
		return nil
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys <function.json>...",
	Short: "synthesize keys and print the verifying key map of the functions' program",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, err := config.Keys()
		if err != nil {
			return err
		}
		prog := ""
		for _, path := range args {
			fn, err := loadFunction(path)
			if err != nil {
				return err
			}
			if prog != "" && fn.Program != prog {
				return fmt.Errorf("%s: function of %s, expected %s", path, fn.Program, prog)
			}
			prog = fn.Program
			if _, err := keys.Keys(fn); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return printJSON(keys.Export(prog))
	},
}

var executeCmdKey string
var executeCmdFee uint64

var executeCmd = &cobra.Command{
	Use:   "execute <function.json> <input>...",
	Short: "execute a function and print the proven transition",
	Long:  "Inputs are literals such as 5u64, true or aleo1..., or record JSON.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sk, err := accounts.ParsePrivateKey(executeCmdKey)
		if err != nil {
			return err
		}
		fn, err := loadFunction(args[0])
		if err != nil {
			return err
		}
		inputs := make([]plaintext.Value, 0, len(args)-1)
		for _, s := range args[1:] {
			v, err := plaintext.ParseValue(s)
			if err != nil {
				return fmt.Errorf("input %q: %w", s, err)
			}
			inputs = append(inputs, v)
		}
		keys, err := config.Keys()
		if err != nil {
			return err
		}
		t, err := eonvm.GenerateExecution(fn, inputs, sk, keys, eonvm.WithFee(executeCmdFee))
		if err != nil {
			return err
		}
		return printJSON(t)
	},
}

var verifyCmdVks map[string]string

var verifyCmd = &cobra.Command{
	Use:   "verify <transitions.json>",
	Short: "verify a list of transitions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, err := config.Keys()
		if err != nil {
			return err
		}
		programs := make([]string, 0, len(verifyCmdVks))
		for prog := range verifyCmdVks {
			programs = append(programs, prog)
		}
		sort.Strings(programs)
		for _, prog := range programs {
			raw, err := os.ReadFile(verifyCmdVks[prog])
			if err != nil {
				return err
			}
			var m eonvm.VkMap
			if err := json.Unmarshal(raw, &m); err != nil {
				return fmt.Errorf("%s: %w", verifyCmdVks[prog], err)
			}
			keys.Import(prog, &m)
		}
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var transitions []*eonvm.Transition
		if err := json.Unmarshal(raw, &transitions); err != nil {
			return err
		}
		if err := eonvm.VerifyExecution(context.Background(), transitions, keys); err != nil {
			return err
		}
		fmt.Println("ok:", len(transitions), "transitions")
		return nil
	},
}

var srsCmd = &cobra.Command{
	Use:   "srs",
	Short: "inspect the srs cache",
}

var srsChecksumCmd = &cobra.Command{
	Use:   "checksum",
	Short: "print the sha256 of the cached canonical points and of every lagrange size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ck, err := config.SRS().Canonical()
		if err != nil {
			return err
		}
		fmt.Println("sha256 ( SRS.CK ) =", srs.Checksum(ck))
		sums, err := srs.LagrangeChecksums(ck)
		if err != nil {
			return err
		}
		for i := 1; i <= len(sums); i++ {
			fmt.Println("sha256 ( SRS.LK [", i, "] ) =", sums[i])
		}
		return nil
	},
}

func init() {
	accountCmd.AddCommand(accountNewCmd)
	executeCmd.Flags().StringVar(&executeCmdKey, "key", "", "private key of the caller")
	executeCmd.Flags().Uint64Var(&executeCmdFee, "fee", 0, "transition fee")
	executeCmd.MarkFlagRequired("key")
	verifyCmd.Flags().StringToStringVar(&verifyCmdVks, "vks", nil, "verifying key map per program, as program=path")
	srsCmd.AddCommand(srsChecksumCmd)
}
