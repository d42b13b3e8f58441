// Package mode holds the named sub-commands of a parser and dispatches the
// resolved namespace to their callbacks.
//
// Every callback satisfies [Callback]. Two constructors cover the usual
// cases:
//
//   - [Direct] binds namespace keys to the parameters of a declared
//     [Signature] and calls a Go function with the bound [Inputs].
//   - [Deferred] names a callback by locator ("trainer/run:Train" or
//     "trainer.run.Train") and resolves it through a [Catalog] the first
//     time it is invoked. Packages register their loaders from init,
//     keeping expensive setup out of the parse path:
//
//     func init() {
//     	mode.Register("trainer/run:Train", func() (mode.Callback, error) {
//     		return mode.Direct(mode.Signature{Params: []mode.Param{{Name: "model"}}}, train), nil
//     	})
//     }
package mode
