package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/chihaya/bencode"
	"github.com/chihaya/bencode/pkg/log"
)

func main() {
	var configFilePath string
	var strict bool
	var debugLog bool
	var jsonLog bool

	limits := bencode.DefaultLimits()

	rootCmd := &cobra.Command{
		Use:   "bencode",
		Short: "bencode codec",
		Long:  "A strict decoder and canonical encoder for the bencode serialization format",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debugLog {
				log.SetDebug(true)
				log.Debug("debug logging enabled")
			}
			if jsonLog {
				log.SetFormatter(&logrus.JSONFormatter{})
			}

			if configFilePath != "" {
				cfgFile, err := ParseConfigFile(configFilePath)
				if err != nil {
					return errors.Wrap(err, "failed to read config")
				}
				limits = cfgFile.Bencode
			}
			if strict {
				limits.EnforceSortedKeys = true
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFilePath, "config", "", "location of configuration file")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "reject dictionaries with unsorted keys")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json", false, "enable json logging")

	dumpCmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "decode a bencoded file and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := decodeFile(args[0], limits)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(plain(v), "", "  ")
			if err != nil {
				return errors.Wrap(err, "failed to render JSON")
			}
			fmt.Println(string(out))
			return nil
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "validate bencoded files against the strict grammar",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var g errgroup.Group
			for _, path := range args {
				path := path
				g.Go(func() error {
					if _, err := decodeFile(path, limits); err != nil {
						log.Error("invalid", log.Fields{"file": path}, log.Err(err))
						return err
					}
					log.Info("valid", log.Fields{"file": path})
					return nil
				})
			}
			return g.Wait()
		},
	}

	hashCmd := &cobra.Command{
		Use:   "hash FILE",
		Short: "print the SHA-256 digest of a file's canonical encoding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := decodeFile(args[0], limits)
			if err != nil {
				return err
			}

			sum := bencode.Sum(v)
			fmt.Println(hex.EncodeToString(sum[:]))
			return nil
		},
	}

	rootCmd.AddCommand(dumpCmd, checkCmd, hashCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal("failed to run command", log.Err(err))
	}
}

func decodeFile(path string, lim bencode.Limits) (bencode.Value, error) {
	buf, err := os.ReadFile(os.ExpandEnv(path))
	if err != nil {
		return nil, err
	}

	v, err := bencode.UnmarshalWith(lim, buf)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}
	return v, nil
}

// plain converts a Value into the corresponding encoding/json types. Byte
// strings are rendered as Go strings; encoding/json substitutes U+FFFD for
// bytes that are not valid UTF-8, so dump output is a best-effort view of
// binary payloads, not a lossless one.
func plain(v bencode.Value) interface{} {
	switch v := v.(type) {
	case bencode.Integer:
		return int64(v)
	case bencode.String:
		return string(v)
	case bencode.List:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = plain(e)
		}
		return out
	case bencode.Dict:
		out := make(map[string]interface{}, len(v))
		for k, e := range v {
			out[k] = plain(e)
		}
		return out
	}
	return nil
}
