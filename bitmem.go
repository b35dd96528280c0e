package bitmem

import (
	"github.com/vuuvv/bitmem/core"
	"github.com/vuuvv/bitmem/element"
	"github.com/vuuvv/bitmem/log"
	"github.com/vuuvv/bitmem/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Scheme = core.Scheme
type SchemeCache = core.SchemeCache
type MemoryMap = core.MemoryMap
type Layout = core.Layout
type SchemaDef = core.SchemaDef

var Compile = core.Compile
var Resolve = core.Resolve
var NewScheme = core.NewScheme
var NewSchemeFromFile = core.NewSchemeFromFile
var NewSchemeCache = core.NewSchemeCache
var NewMemoryMap = core.NewMemoryMap
var NewBlankMemoryMap = core.NewBlankMemoryMap

type SyntaxError = core.SyntaxError
type LayoutError = core.LayoutError
type OutOfBoundsError = core.OutOfBoundsError
type TypeMismatchError = core.TypeMismatchError
type EncodingError = core.EncodingError

type Element = element.Element
type Struct = element.Struct
type Array = element.Array
type Int = element.Int
type BCD = element.BCD
type Chars = element.Chars
type Bit = element.Bit
type BitArray = element.BitArray

var Bind = element.Bind

func Setup() {
	var logger *zap.Logger
	var err error
	if !zap.L().Core().Enabled(zapcore.PanicLevel) {
		logger, err = zap.NewDevelopment()
		utils.PanicIf(err)
	} else {
		logger = zap.L()
	}
	log.SetLogger(logger)
	log.SetDefaultLogger(logger)
}
