package pipeline

import "github.com/vmihailenco/msgpack/v5"

// Marshal encodes a CompileResult for embedders that want to persist or
// transmit a compile's full output (e.g. a build cache, a remote worker
// queue) rather than hold the Go value in memory.
func Marshal(result CompileResult) ([]byte, error) {
	return msgpack.Marshal(result)
}

// Unmarshal decodes bytes produced by Marshal back into a CompileResult.
func Unmarshal(data []byte) (CompileResult, error) {
	var result CompileResult
	err := msgpack.Unmarshal(data, &result)
	return result, err
}
