// Package cli — services.go implements the "escaner services" command,
// which lists the embedded well-known services table used to annotate
// open ports.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/escaner/internal/service"
)

// NewServicesCommand creates the "services" cobra command.
func NewServicesCommand() *cobra.Command {
	var protocol string

	cmd := &cobra.Command{
		Use:   "services",
		Short: "List the embedded well-known services table",
		Long: `Services prints every (port, protocol) pair the scanner can annotate.

The table is static and embedded in the binary; it is consulted only
for ports classified as open, and only for presentation. Ports missing
from it are reported as "desconocido".`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runServices(cmd, protocol)
		},
	}

	cmd.Flags().StringVar(&protocol, "protocol", "",
		"Filter by protocol: tcp or udp (default: all)")

	return cmd
}

// runServices prints the table, optionally filtered by protocol.
func runServices(cmd *cobra.Command, protocol string) error {
	if protocol != "" && protocol != "tcp" && protocol != "udp" {
		return fmt.Errorf("invalid protocol filter %q (valid: tcp, udp)", protocol)
	}

	for _, e := range service.All() {
		if protocol != "" && e.Protocol != protocol {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d/%s\t%s\n", e.Port, e.Protocol, e.Name)
	}
	return nil
}
