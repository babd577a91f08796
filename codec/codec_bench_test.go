package codec

import (
	"testing"

	"github.com/katalvlaran/clements/clements"
	"github.com/katalvlaran/clements/matrix/ops"
)

func benchDecomposition(b *testing.B) *clements.Decomposition {
	b.Helper()
	u, err := ops.HaarUnitary(16, ops.NewRand(1))
	if err != nil {
		b.Fatal(err)
	}
	dec, err := clements.Decompose(u)
	if err != nil {
		b.Fatal(err)
	}

	return dec
}

func BenchmarkMarshal(b *testing.B) {
	dec := benchDecomposition(b)
	for _, c := range allCodecs() {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			warm, err := c.Marshal(dec)
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(len(warm)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := c.Marshal(dec); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkUnmarshal(b *testing.B) {
	dec := benchDecomposition(b)
	for _, c := range allCodecs() {
		data := MustMarshal(c, dec)
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			var got clements.Decomposition
			for i := 0; i < b.N; i++ {
				if err := c.Unmarshal(data, &got); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
