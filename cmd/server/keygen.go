package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochronus/hello-inertia/core/secretkey"
)

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Print a fresh secret key for APP__SECRET_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := secretkey.Generate()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), secretkey.Encode(key))
			return err
		},
	}
}
