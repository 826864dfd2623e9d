// Package globals provides shared flag structures for CLI commands.
package globals

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/brandmap/pkg/brands"
)

// ResourceFlags holds flags for listing stored brands.
type ResourceFlags struct {
	Limit  int
	Search string
}

// ParseResources extracts resource flags from a command.
// The command must have had AddResourceFlags called on it, otherwise this will panic.
func ParseResources(cmd *cobra.Command) *ResourceFlags {
	return &ResourceFlags{
		Search: mustGetString(cmd, "search"),
		Limit:  mustGetInt(cmd, "limit"),
	}
}

// AddResourceFlags adds resource-specific flags to a command.
func AddResourceFlags(cmd *cobra.Command) *ResourceFlags {
	flags := &ResourceFlags{}

	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")
	cmd.Flags().StringVar(&flags.Search, "search", "",
		"Search term matched against brand name and headquarters")

	return flags
}

// Apply filters bs by the search term and truncates to the limit.
func (f *ResourceFlags) Apply(bs []brands.Brand) []brands.Brand {
	out := bs
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		out = make([]brands.Brand, 0, len(bs))
		for _, b := range bs {
			if strings.Contains(strings.ToLower(b.BrandName), term) ||
				strings.Contains(strings.ToLower(b.Headquarters), term) {
				out = append(out, b)
			}
		}
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
