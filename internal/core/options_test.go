package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"reqtxt/internal/policies"
	"reqtxt/internal/shared"
	"reqtxt/internal/types"
)

type testNormalizer struct{}

func (testNormalizer) Normalize(name string) string {
	return shared.NormalizePipName(name)
}

func applyOptionText(t *testing.T, options *types.GlobalOptions, text string) (*types.Diagnostic, error) {
	t.Helper()
	classified := classifyText(text)
	require.Nil(t, classified.Diagnostic, text)
	policy, err := policies.NewOptionMergePolicy(policies.StrategyAccumulate)
	require.NoError(t, err)
	return applyGlobalOption(options, classified, policy, testNormalizer{})
}

func TestApplyGlobalOptionAccumulatesURLLists(t *testing.T) {
	options := &types.GlobalOptions{}
	inputs := []string{
		"--index-url=https://pypi.org/simple",
		"--extra-index-url https://mirror.example/simple",
		"--index-url=https://pypi.org/simple",
		"-f ./wheels",
		"--find-links=./wheels",
		"--trusted-host pypi.internal",
	}
	for _, text := range inputs {
		diagnostic, err := applyOptionText(t, options, text)
		require.NoError(t, err, text)
		require.Nil(t, diagnostic, text)
	}
	want := types.GlobalOptions{
		IndexURLs:      []string{"https://pypi.org/simple"},
		ExtraIndexURLs: []string{"https://mirror.example/simple"},
		FindLinks:      []string{"./wheels"},
		TrustedHosts:   []string{"pypi.internal"},
	}
	if diff := cmp.Diff(want, *options); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}
}

func TestApplyGlobalOptionBooleansORAndWarnOnRepeat(t *testing.T) {
	options := &types.GlobalOptions{}
	diagnostic, err := applyOptionText(t, options, "--pre")
	require.NoError(t, err)
	require.Nil(t, diagnostic)
	require.True(t, options.Pre)

	diagnostic, err = applyOptionText(t, options, "--pre")
	require.NoError(t, err)
	require.NotNil(t, diagnostic)
	require.Equal(t, types.DiagnosticRedundantOption, diagnostic.Kind)
	require.True(t, options.Pre)
}

func TestApplyGlobalOptionBooleanRejectsValue(t *testing.T) {
	options := &types.GlobalOptions{}
	_, err := applyOptionText(t, options, "--no-index yes")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestApplyGlobalOptionRequiresValue(t *testing.T) {
	options := &types.GlobalOptions{}
	for _, text := range []string{"--index-url", "--find-links", "--trusted-host", "--no-binary", "--use-feature"} {
		_, err := applyOptionText(t, options, text)
		require.Error(t, err, text)
		require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err), text)
	}
}

func TestApplyGlobalOptionRejectsSecondOptionOnLine(t *testing.T) {
	options := &types.GlobalOptions{}
	_, err := applyOptionText(t, options, "--index-url https://pypi.org/simple --pre")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	require.Contains(t, err.Error(), "takes a single value")
	require.Empty(t, options.IndexURLs)
	require.False(t, options.Pre)
}

func TestApplyFormatControlSelections(t *testing.T) {
	options := &types.GlobalOptions{}
	_, err := applyOptionText(t, options, "--no-binary Flask,psycopg2_binary")
	require.NoError(t, err)
	want := []string{"flask", "psycopg2-binary"}
	if diff := cmp.Diff(want, options.NoBinary); diff != "" {
		t.Fatalf("unexpected no-binary set (-want +got):\n%s", diff)
	}

	_, err = applyOptionText(t, options, "--only-binary flask")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"psycopg2-binary"}, options.NoBinary); diff != "" {
		t.Fatalf("no-binary should release flask (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"flask"}, options.OnlyBinary); diff != "" {
		t.Fatalf("unexpected only-binary set (-want +got):\n%s", diff)
	}
}

func TestApplyFormatControlAllAndNone(t *testing.T) {
	options := &types.GlobalOptions{OnlyBinary: []string{"flask"}}
	_, err := applyOptionText(t, options, "--no-binary :all:")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{":all:"}, options.NoBinary); diff != "" {
		t.Fatalf("unexpected no-binary set (-want +got):\n%s", diff)
	}
	require.Empty(t, options.OnlyBinary)

	_, err = applyOptionText(t, options, "--no-binary :none:")
	require.NoError(t, err)
	require.Empty(t, options.NoBinary)
}

func TestApplyFormatControlAllThenNamesAfterNone(t *testing.T) {
	options := &types.GlobalOptions{}
	_, err := applyOptionText(t, options, "--no-binary :all:,:none:,flask")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"flask"}, options.NoBinary); diff != "" {
		t.Fatalf("unexpected no-binary set (-want +got):\n%s", diff)
	}
}

func TestApplyFormatControlRejectsDashValue(t *testing.T) {
	options := &types.GlobalOptions{}
	_, err := applyOptionText(t, options, "--no-binary --pre")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestParseHashPin(t *testing.T) {
	span := types.Span{Origin: "requirements.txt", StartLine: 3, StartCol: 1, EndLine: 3, EndCol: 20}

	pin, err := parseHashPin("sha256:deadbeef", span)
	require.NoError(t, err)
	if diff := cmp.Diff(types.HashPin{Algorithm: "sha256", Digest: "deadbeef"}, pin); diff != "" {
		t.Fatalf("unexpected pin (-want +got):\n%s", diff)
	}

	pin, err = parseHashPin("SHA512:ABCDEF0123", span)
	require.NoError(t, err)
	require.Equal(t, "sha512", pin.Algorithm)

	for _, value := range []string{"", "sha256", "md5:deadbeef", "sha1:deadbeef", "sha256:", "sha256:not-hex!"} {
		_, err := parseHashPin(value, span)
		require.Error(t, err, value)
		require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err), value)
	}
}

func TestParseHashPinErrorNamesSpan(t *testing.T) {
	span := types.Span{Origin: "reqs/base.txt", StartLine: 7, StartCol: 1, EndLine: 7, EndCol: 12}
	_, err := parseHashPin("md5:deadbeef", span)
	require.Error(t, err)
	require.Contains(t, err.Error(), "reqs/base.txt:7:1")
}
