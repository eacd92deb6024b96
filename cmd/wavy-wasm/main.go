// SPDX-License-Identifier: EPL-2.0

//go:build js && wasm

// Command wavy-wasm exposes the analysis pipeline to JavaScript.
//
//	wavyExtractEnvelope(bytes: Uint8Array) -> {data: Float32Array} | {error, kind}
//	wavyParseAudio(bytes: Uint8Array, groupSize?: number) -> same shape
package main

import (
	"fmt"
	"syscall/js"

	"github.com/ik5/wavy"
	"github.com/ik5/wavy/audio"
)

const defaultGroupSize = 8

func main() {
	// Keep program running
	c := make(chan struct{})

	js.Global().Set("wavyExtractEnvelope", js.FuncOf(wasmExtractEnvelope))
	js.Global().Set("wavyParseAudio", js.FuncOf(wasmParseAudio))

	println("wavy module loaded")
	<-c
}

func wasmExtractEnvelope(_ js.Value, args []js.Value) (result any) {
	defer recoverInto(&result)

	data, err := bytesArg(args)
	if err != nil {
		return errorResult(err)
	}

	env, err := wavy.ExtractEnvelope(data)
	if err != nil {
		return errorResult(err)
	}

	return dataResult(env)
}

func wasmParseAudio(_ js.Value, args []js.Value) (result any) {
	defer recoverInto(&result)

	data, err := bytesArg(args)
	if err != nil {
		return errorResult(err)
	}

	groupSize := defaultGroupSize
	if len(args) > 1 && args[1].Type() == js.TypeNumber {
		groupSize = args[1].Int()
	}

	features, err := wavy.ExtractSpectralFeatures(data, groupSize)
	if err != nil {
		return errorResult(err)
	}

	return dataResult(features)
}

// bytesArg copies the Uint8Array in args[0] into Go memory.
func bytesArg(args []js.Value) ([]byte, error) {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		return nil, fmt.Errorf("%w: expected a Uint8Array", audio.ErrInvalidData)
	}

	length := args[0].Get("length").Int()
	data := make([]byte, length)
	js.CopyBytesToGo(data, args[0])

	return data, nil
}

func dataResult(values []float32) any {
	arr := js.Global().Get("Float32Array").New(len(values))
	for i, v := range values {
		arr.SetIndex(i, v)
	}

	return js.ValueOf(map[string]any{"data": arr})
}

func errorResult(err error) any {
	return js.ValueOf(map[string]any{
		"error": err.Error(),
		"kind":  audio.KindOf(err).String(),
	})
}

// recoverInto turns a panic into a processing error result.
func recoverInto(result *any) {
	if r := recover(); r != nil {
		*result = js.ValueOf(map[string]any{
			"error": fmt.Sprint(r),
			"kind":  audio.KindProcessing.String(),
		})
	}
}
