package adapters

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"reqtxt/internal/types"
)

func TestParseSpecifierShapes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.Specifier
	}{
		{
			name: "bare name",
			text: "flask",
			want: types.Specifier{Kind: types.SpecifierNamed, Name: "flask"},
		},
		{
			name: "name keeps original casing",
			text: "Django==4.2",
			want: types.Specifier{Kind: types.SpecifierNamed, Name: "Django", Versions: "==4.2"},
		},
		{
			name: "version set with spaces",
			text: "requests >=2.0,<3",
			want: types.Specifier{Kind: types.SpecifierNamed, Name: "requests", Versions: ">=2.0,<3"},
		},
		{
			name: "parenthesized version set",
			text: "pytest (>=7.0)",
			want: types.Specifier{Kind: types.SpecifierNamed, Name: "pytest", Versions: ">=7.0"},
		},
		{
			name: "single extra",
			text: "uvicorn[standard]",
			want: types.Specifier{
				Kind:   types.SpecifierNamed,
				Name:   "uvicorn",
				Extras: []string{"standard"},
			},
		},
		{
			name: "empty extras list",
			text: "pkg[]",
			want: types.Specifier{Kind: types.SpecifierNamed, Name: "pkg"},
		},
		{
			name: "extras version and marker",
			text: `celery[redis,msgpack]>=5.0 ; python_version >= "3.8"`,
			want: types.Specifier{
				Kind:     types.SpecifierNamed,
				Name:     "celery",
				Extras:   []string{"redis", "msgpack"},
				Versions: ">=5.0",
				Marker:   `python_version >= "3.8"`,
			},
		},
		{
			name: "marker only",
			text: `importlib-metadata ; python_version < "3.8"`,
			want: types.Specifier{
				Kind:   types.SpecifierNamed,
				Name:   "importlib-metadata",
				Marker: `python_version < "3.8"`,
			},
		},
		{
			name: "named direct reference",
			text: "flask @ https://example.com/flask-2.0.tar.gz",
			want: types.Specifier{
				Kind: types.SpecifierURL,
				Name: "flask",
				URL:  "https://example.com/flask-2.0.tar.gz",
			},
		},
		{
			name: "named direct reference with extras",
			text: "flask[async] @ https://example.com/flask.whl",
			want: types.Specifier{
				Kind:   types.SpecifierURL,
				Name:   "flask",
				Extras: []string{"async"},
				URL:    "https://example.com/flask.whl",
			},
		},
		{
			name: "named direct reference with marker",
			text: `flask @ https://example.com/flask.whl ; python_version < "3.11"`,
			want: types.Specifier{
				Kind:   types.SpecifierURL,
				Name:   "flask",
				URL:    "https://example.com/flask.whl",
				Marker: `python_version < "3.11"`,
			},
		},
		{
			name: "named VCS reference",
			text: "mypkg @ git+https://github.com/org/repo.git@v1.0",
			want: types.Specifier{
				Kind: types.SpecifierVCS,
				Name: "mypkg",
				URL:  "git+https://github.com/org/repo.git@v1.0",
				VCS:  "git",
			},
		},
		{
			name: "VCS reference with egg fragment",
			text: "git+https://github.com/org/repo.git@v1.2#egg=mypkg",
			want: types.Specifier{
				Kind: types.SpecifierVCS,
				Name: "mypkg",
				URL:  "git+https://github.com/org/repo.git@v1.2#egg=mypkg",
				VCS:  "git",
			},
		},
		{
			name: "VCS reference with egg and subdirectory",
			text: "git+https://github.com/org/mono.git#egg=pkg&subdirectory=lib",
			want: types.Specifier{
				Kind: types.SpecifierVCS,
				Name: "pkg",
				URL:  "git+https://github.com/org/mono.git#egg=pkg&subdirectory=lib",
				VCS:  "git",
			},
		},
		{
			name: "anonymous VCS reference",
			text: "git+ssh://git@github.com/org/repo.git",
			want: types.Specifier{
				Kind: types.SpecifierVCS,
				URL:  "git+ssh://git@github.com/org/repo.git",
				VCS:  "git",
			},
		},
		{
			name: "bare archive url",
			text: "https://example.com/pkg-1.0.whl",
			want: types.Specifier{Kind: types.SpecifierURL, URL: "https://example.com/pkg-1.0.whl"},
		},
		{
			name: "archive url with egg extras",
			text: "https://example.com/archive.zip#egg=legacy[extra]",
			want: types.Specifier{
				Kind:   types.SpecifierURL,
				Name:   "legacy",
				Extras: []string{"extra"},
				URL:    "https://example.com/archive.zip#egg=legacy[extra]",
			},
		},
		{
			name: "url with marker",
			text: `https://example.com/pkg.whl ; python_version < "3.9"`,
			want: types.Specifier{
				Kind:   types.SpecifierURL,
				URL:    "https://example.com/pkg.whl",
				Marker: `python_version < "3.9"`,
			},
		},
		{
			name: "relative path",
			text: "./local-pkg",
			want: types.Specifier{Kind: types.SpecifierPath, Path: "./local-pkg"},
		},
		{
			name: "parent path",
			text: "../libs/tool",
			want: types.Specifier{Kind: types.SpecifierPath, Path: "../libs/tool"},
		},
		{
			name: "absolute path",
			text: "/srv/wheels/pkg.tar.gz",
			want: types.Specifier{Kind: types.SpecifierPath, Path: "/srv/wheels/pkg.tar.gz"},
		},
		{
			name: "home path",
			text: "~/projects/pkg",
			want: types.Specifier{Kind: types.SpecifierPath, Path: "~/projects/pkg"},
		},
		{
			name: "current directory",
			text: ".",
			want: types.Specifier{Kind: types.SpecifierPath, Path: "."},
		},
		{
			name: "file url",
			text: "file:///srv/pkgs/tool-1.0.tar.gz",
			want: types.Specifier{Kind: types.SpecifierPath, Path: "file:///srv/pkgs/tool-1.0.tar.gz"},
		},
		{
			name: "file url with egg fragment",
			text: "file:///srv/pkgs/tool.tar.gz#egg=tool",
			want: types.Specifier{
				Kind: types.SpecifierPath,
				Name: "tool",
				Path: "file:///srv/pkgs/tool.tar.gz#egg=tool",
			},
		},
		{
			name: "path with marker",
			text: `./local-pkg ; sys_platform == "linux"`,
			want: types.Specifier{
				Kind:   types.SpecifierPath,
				Path:   "./local-pkg",
				Marker: `sys_platform == "linux"`,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPEP508GrammarAdapter().ParseSpecifier(tt.text)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected specifier (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSpecifierErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "empty", text: "", want: "empty requirement specifier"},
		{name: "missing version", text: "flask==", want: "invalid version specifier"},
		{name: "stray at sign", text: "flask@2.0", want: "invalid version specifier"},
		{name: "bad name", text: "-flask", want: "invalid distribution name"},
		{name: "unclosed extras", text: "pkg[extra", want: "missing closing bracket"},
		{name: "empty extra", text: "pkg[a,,b]", want: "invalid extra name"},
		{name: "empty marker", text: "flask ;", want: "empty environment marker"},
		{name: "unterminated marker string", text: `flask ; python_version < "3.9`, want: "unterminated string"},
		{name: "unbalanced marker parens", text: `flask ; (python_version < "3.9"`, want: "unbalanced parentheses"},
		{name: "vcs without transport", text: "git+example.com/repo.git", want: "invalid VCS reference"},
		{name: "bad egg fragment", text: "https://example.com/a.zip#egg=not a name", want: "invalid #egg fragment"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPEP508GrammarAdapter().ParseSpecifier(tt.text)
			require.Error(t, err)
			require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
			require.Contains(t, err.Error(), tt.want)
		})
	}
}
