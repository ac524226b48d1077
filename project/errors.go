package project

import "errors"

var (
	ErrInvalidStrategy    = errors.New("invalid load strategy")
	ErrPathResolution     = errors.New("asset outside base directory")
	ErrUnsupportedKind    = errors.New("unsupported asset kind")
	ErrUnknownAsset       = errors.New("unknown asset")
	ErrNoLoadOrder        = errors.New("asset has no load order")
	ErrLoadOrderCollision = errors.New("load order collision")
	ErrMissingLoadOrder   = errors.New("script has no load order")
	ErrScriptSyntax       = errors.New("script does not parse")
	ErrScaffoldTimeout    = errors.New("timed out waiting for scaffolder")
)
