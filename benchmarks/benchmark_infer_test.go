package inferskema_test

import (
	"bytes"
	"fmt"
	"strconv"
	"testing"

	inferskema "github.com/reoring/inferskema"
	"github.com/reoring/inferskema/source"
)

// ---- Helpers ----

// generateWideDocument returns a JSON document of the form:
// {"_id":{"$oid":"..."},"name":"n","age":1,"active":true,"meta":{"score":0},
//  "items":[{"sku":"s0","qty":0},...],"k0":"v0",...}
func generateWideDocument(items int, extraFields int) []byte {
	var buf bytes.Buffer
	buf.Grow(256 + items*32 + extraFields*16)
	buf.WriteString(`{"_id":{"$oid":"5f1b2c3d4e5f60718293a4b5"},"name":"n","age":1,"active":true,`)
	buf.WriteString(`"price":{"$numberDecimal":"9.99"},"meta":{"score":0,"tags":["a","b"]},"items":[`)
	for i := 0; i < items; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"sku":"s%d","qty":%d}`, i, i)
	}
	buf.WriteByte(']')
	for k := 0; k < extraFields; k++ {
		buf.WriteString(`,"k`)
		buf.WriteString(strconv.Itoa(k))
		buf.WriteString(`":"v`)
		buf.WriteString(strconv.Itoa(k))
		buf.WriteString(`"`)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func decodeSample(tb testing.TB, data []byte, f source.Format) any {
	tb.Helper()
	v, err := source.Decode(data, f, source.Options{})
	if err != nil {
		tb.Fatalf("decode failed: %v", err)
	}
	return v
}

// ---- Micro benchmarks (small samples) ----

func Benchmark_Infer_Small(b *testing.B) {
	v := decodeSample(b, generateWideDocument(2, 0), source.FormatExtJSON)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := inferskema.Infer(v, inferskema.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Infer_Small_StrongArraysDecimal(b *testing.B) {
	v := decodeSample(b, generateWideDocument(2, 0), source.FormatExtJSON)
	opt := inferskema.Options{StronglyTypeArrays: true, DecimalRules: inferskema.DecimalRules()}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := inferskema.Infer(v, opt); err != nil {
			b.Fatal(err)
		}
	}
}

// ---- Macro benchmarks (wide samples with long arrays) ----

const (
	wideItems  = 5000
	wideExtras = 64
)

func Benchmark_Infer_Wide_StrongArrays(b *testing.B) {
	v := decodeSample(b, generateWideDocument(wideItems, wideExtras), source.FormatExtJSON)
	opt := inferskema.Options{StronglyTypeArrays: true}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := inferskema.Infer(v, opt); err != nil {
			b.Fatal(err)
		}
	}
}

// ---- Decoders ----

func Benchmark_Decode_JSON(b *testing.B) {
	data := generateWideDocument(wideItems, wideExtras)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := source.JSON(data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Decode_ExtJSON(b *testing.B) {
	data := generateWideDocument(wideItems, wideExtras)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := source.ExtJSON(data, false); err != nil {
			b.Fatal(err)
		}
	}
}

// JSON is a subset of YAML, so the same bytes exercise the node walker.
func Benchmark_Decode_YAML(b *testing.B) {
	data := generateWideDocument(wideItems, wideExtras)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := source.YAML(data); err != nil {
			b.Fatal(err)
		}
	}
}
