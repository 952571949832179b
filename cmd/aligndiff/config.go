package main

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aligndiff/aligndiff/compare"
)

// renderConfig carries the rendering preferences layered on top of
// compare.CompareOptions: how wide the terminal is, whether to run chroma
// syntax highlighting, and what language to highlight as. Grounded on
// dm/side_by_side.go's SideBySideConfig (DisplayColumns, ContextLines), kept
// as a separate struct from compare.CompareOptions since these are display
// concerns the compare package itself has no business knowing about.
type renderConfig struct {
	Columns      int    `mapstructure:"columns"`
	ContextLines int    `mapstructure:"context_lines"`
	Highlight    bool   `mapstructure:"highlight"`
	Lang         string `mapstructure:"lang"`
}

var defaultRenderConfig = renderConfig{
	Columns:      160,
	ContextLines: 3,
	Highlight:    true,
}

// loadConfig layers defaults < an optional TOML config file < environment
// variables < command-line flags, the way jd100879-AgentCore's
// internal/config package does with viper+mapstructure+toml. fs has already
// had Parse called on it by main before loadConfig runs.
func loadConfig(fs *pflag.FlagSet) (compare.CompareOptions, renderConfig, error) {
	opts := compare.DefaultCompareOptions
	rcfg := defaultRenderConfig

	v := viper.New()
	v.SetConfigName("aligndiff")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/aligndiff")
	v.SetEnvPrefix("ALIGNDIFF")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return opts, rcfg, err
		}
	}
	if err := v.BindPFlags(fs); err != nil {
		return opts, rcfg, err
	}

	opts.IgnoreCase = v.GetBool("ignore-case")
	opts.IgnoreSpaces = v.GetBool("ignore-spaces")
	opts.IgnoreEmptyLines = v.GetBool("ignore-empty-lines")
	opts.DetectMoves = v.GetBool("detect-moves")
	opts.DetectSubLines = v.GetBool("detect-sub-lines")
	opts.CharPrecision = v.GetBool("char-precision")
	if n := v.GetInt("min-match-length"); n > 0 {
		opts.MinMatchLength = n
	}
	if n := v.GetInt("match-percent-threshold"); n >= 0 {
		opts.MatchPercentThreshold = n
	}
	if v.GetBool("old-file-is-sub") {
		opts.OldFileView = compare.SubView
	}

	if n := v.GetInt("columns"); n > 0 {
		rcfg.Columns = n
	}
	if n := v.GetInt("context-lines"); n >= 0 {
		rcfg.ContextLines = n
	}
	rcfg.Highlight = v.GetBool("highlight")
	if lang := v.GetString("lang"); lang != "" {
		rcfg.Lang = lang
	}

	return opts, rcfg, nil
}

// configFile is the on-disk shape of aligndiff.toml, the format loadConfig
// reads back in via viper's own TOML support. The two directions don't
// share a decoder: viper has no symmetric encoder, so the write side
// (--dump-config) goes through github.com/BurntSushi/toml directly, the
// way jd100879-AgentCore/slb/internal/config's loader.go round-trips its
// own TOML config files.
type configFile struct {
	IgnoreCase            bool   `toml:"ignore-case"`
	IgnoreSpaces          bool   `toml:"ignore-spaces"`
	IgnoreEmptyLines      bool   `toml:"ignore-empty-lines"`
	DetectMoves           bool   `toml:"detect-moves"`
	DetectSubLines        bool   `toml:"detect-sub-lines"`
	MinMatchLength        int    `toml:"min-match-length"`
	CharPrecision         bool   `toml:"char-precision"`
	MatchPercentThreshold int    `toml:"match-percent-threshold"`
	Columns               int    `toml:"columns"`
	ContextLines          int    `toml:"context-lines"`
	Highlight             bool   `toml:"highlight"`
	Lang                  string `toml:"lang"`
}

// writeConfig renders the currently resolved options as a TOML document a
// user can save as aligndiff.toml and edit, the implementation behind
// --dump-config. The old-file-is-sub setting is not written.
func writeConfig(w io.Writer, opts compare.CompareOptions, rcfg renderConfig) error {
	cf := configFile{
		IgnoreCase:            opts.IgnoreCase,
		IgnoreSpaces:          opts.IgnoreSpaces,
		IgnoreEmptyLines:      opts.IgnoreEmptyLines,
		DetectMoves:           opts.DetectMoves,
		DetectSubLines:        opts.DetectSubLines,
		MinMatchLength:        opts.MinMatchLength,
		CharPrecision:         opts.CharPrecision,
		MatchPercentThreshold: opts.MatchPercentThreshold,
		Columns:               rcfg.Columns,
		ContextLines:          rcfg.ContextLines,
		Highlight:             rcfg.Highlight,
		Lang:                  rcfg.Lang,
	}
	return toml.NewEncoder(w).Encode(cf)
}
