package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/christopherkarani/blend-client/core"
)

func newPolicyCmd(value string) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("policy", "cache", "")
	_ = cmd.Flags().Set("policy", value)
	return cmd
}

func TestPolicyFrom(t *testing.T) {
	cases := map[string]core.CachePolicyKind{
		"no-cache": core.CachePolicyNoCache,
		"cache":    core.CachePolicyUseCache,
		"refresh":  core.CachePolicyRefreshCache,
	}

	for value, kind := range cases {
		policy, err := policyFrom(newPolicyCmd(value))
		require.NoError(t, err)
		require.Equal(t, kind, policy.Kind)
	}
}

func TestPolicyFromInvalid(t *testing.T) {
	_, err := policyFrom(newPolicyCmd("nocache"))
	require.Error(t, err, "a typo must report, not panic")
}
