/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

import (
	"strings"
	"testing"
)

func TestHistogramSumsToLength(t *testing.T) {
	buf := []byte("hello, world! héllo")
	table := histogram(buf)
	sum := 0
	for _, c := range table {
		sum += c
	}
	if sum != len(buf) {
		t.Fatalf("histogram sum = %d, want %d", sum, len(buf))
	}
}

func TestTransitionConfidenceBounds(t *testing.T) {
	if got := transitionConfidence(0, 0); got != 0.5 {
		t.Fatalf("transitionConfidence(0,0) = %v, want 0.5", got)
	}
	if got := transitionConfidence(1000, 0); got <= 0.99 || got >= 1.0 {
		t.Fatalf("transitionConfidence(1000,0) = %v, want close to 1", got)
	}
	if got := transitionConfidence(0, 1000); got >= 0.01 {
		t.Fatalf("transitionConfidence(0,1000) = %v, want close to 0", got)
	}
}

func TestValidateUTF8DFAAcceptsASCIIAndMultibyte(t *testing.T) {
	cases := []struct {
		name string
		buf  []byte
		ok   bool
	}{
		{"ascii", []byte("hello world"), true},
		{"two-byte", []byte("café"), true},
		{"three-byte cjk", []byte("日本語"), true},
		{"four-byte emoji", []byte("😀"), true},
		{"truncated continuation", []byte{0xE4, 0xB8}, false},
		{"overlong encoding", []byte{0xC0, 0x80}, false},
		{"lone continuation byte", []byte{0x80}, false},
		{"surrogate half encoded as utf8", []byte{0xED, 0xA0, 0x80}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, _ := validateUTF8DFA(tc.buf)
			if ok != tc.ok {
				t.Fatalf("validateUTF8DFA(%q) ok = %v, want %v", tc.buf, ok, tc.ok)
			}
		})
	}
}

func TestValidateUTF16SurrogatePairs(t *testing.T) {
	validLE := []byte{0x41, 0x00, 0x3D, 0xD8, 0x00, 0xDE}
	if ok, _ := validateUTF16SurrogatePairs(validLE, true); !ok {
		t.Fatalf("expected valid LE surrogate pair sequence to pass")
	}

	danglingHigh := []byte{0x00, 0xD8}
	if ok, _ := validateUTF16SurrogatePairs(danglingHigh, true); ok {
		t.Fatalf("expected dangling high surrogate to fail")
	}

	oddLength := []byte{0x41, 0x00, 0x42}
	if ok, _ := validateUTF16SurrogatePairs(oddLength, true); ok {
		t.Fatalf("expected odd-length buffer to fail")
	}
}

func TestValidateShiftJISRequiresPairedHighBytes(t *testing.T) {
	if ok, _ := validateShiftJIS([]byte{0x82, 0xA0}); !ok {
		t.Fatalf("expected valid two-byte Shift_JIS pair to pass")
	}
	if ok, _ := validateShiftJIS([]byte{0x82}); ok {
		t.Fatalf("expected truncated lead byte to fail")
	}
}

func TestValidateEUCJPAndBig5(t *testing.T) {
	if ok, _ := validateEUCJP([]byte{0xA4, 0xA2}); !ok {
		t.Fatalf("expected valid EUC-JP pair to pass")
	}
	if ok, _ := validateBig5([]byte{0xA4, 0x40}); !ok {
		t.Fatalf("expected valid Big5 low-trail pair to pass")
	}
	if ok, _ := validateBig5([]byte{0xA4, 0x01}); ok {
		t.Fatalf("expected invalid Big5 trail byte to fail")
	}
}

func TestProbeEscapeSequenceRecognizesISO2022JP(t *testing.T) {
	buf := append([]byte{esc, 0x24, 0x42}, []byte("hello")...)
	buf = append(buf, esc, 0x28, 0x42)
	label, conf := probeEscapeSequence(buf)
	if label != ISO2022JP {
		t.Fatalf("probeEscapeSequence label = %q, want %q", label, ISO2022JP)
	}
	if conf < 0.80 || conf > 0.99 {
		t.Fatalf("probeEscapeSequence confidence = %v, out of range", conf)
	}
}

func TestProbeEscapeSequenceRejectsHighBytes(t *testing.T) {
	buf := []byte{esc, 0x24, 0x42, 0xFF}
	if label, _ := probeEscapeSequence(buf); label != "" {
		t.Fatalf("expected empty proposal when buffer has high bytes, got %q", label)
	}
}

func TestChooseByFallbackOrderPrefersWithinAmbiguityWindow(t *testing.T) {
	label, _ := chooseByFallbackOrder(
		proposal{Big5, 0.80},
		proposal{ShiftJIS, 0.82},
	)
	if label != ShiftJIS {
		t.Fatalf("chooseByFallbackOrder = %q, want %q (higher fallback rank among near-tied candidates)", label, ShiftJIS)
	}
}

func TestChooseByFallbackOrderEmptyWhenNoProposals(t *testing.T) {
	label, conf := chooseByFallbackOrder(proposal{"", 0}, proposal{"", 0})
	if label != "" || conf != 0 {
		t.Fatalf("expected empty arbitration result, got (%q, %v)", label, conf)
	}
}

func TestDetectEmptyBufferIsUTF8(t *testing.T) {
	result := Detect(nil)
	if result.Encoding != UTF8 || result.UsedFallback {
		t.Fatalf("Detect(nil) = %+v, want clean utf-8", result)
	}
}

func TestDetectUTF8BOM(t *testing.T) {
	buf := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)
	result := Detect(buf)
	if result.Encoding != UTF8Sig || !result.DetectedByBOM || result.Confidence != 1.0 {
		t.Fatalf("Detect(utf-8-sig BOM) = %+v, want confident BOM hit", result)
	}
}

func TestDetectUTF16LEBOM(t *testing.T) {
	buf := []byte{0xFF, 0xFE, 0x41, 0x00, 0x42, 0x00}
	result := Detect(buf)
	if result.Encoding != UTF16LE || !result.DetectedByBOM {
		t.Fatalf("Detect(utf-16le BOM) = %+v, want utf-16le by BOM", result)
	}
}

func TestDetectPlainASCIIIsUTF8(t *testing.T) {
	result := Detect([]byte("the quick brown fox"))
	if result.Encoding != UTF8 || result.UsedFallback {
		t.Fatalf("Detect(ascii) = %+v, want clean utf-8", result)
	}
}

func TestDetectValidUTF8MultibyteText(t *testing.T) {
	result := Detect([]byte("Zażółć gęślą jaźń"))
	if result.Encoding != UTF8 {
		t.Fatalf("Detect(utf-8 polish text) = %+v, want utf-8", result)
	}
}

func TestDetectLargeBufferStillResolvesToUTF8(t *testing.T) {
	// Exercises the early-exit path in Detect (buffer exceeds earlyExitBytes);
	// plain ASCII caps at 0.97 confidence in the UTF-8 branch, below
	// earlyExitConfidence, so this also exercises the full-buffer rescan.
	buf := []byte(strings.Repeat("ascii only content ", earlyExitBytes))
	result := Detect(buf)
	if result.Encoding != UTF8 || result.UsedFallback {
		t.Fatalf("Detect(large ascii buffer) = %+v, want clean utf-8", result)
	}
	if result.Confidence < 0.9 {
		t.Fatalf("Detect(large ascii buffer) confidence = %v, want high", result.Confidence)
	}
}

func TestBuildAttemptOrderDedupesAndOrders(t *testing.T) {
	order := BuildAttemptOrder("utf-16le", "latin-1", "utf-8")
	want := []string{UTF16LE, UTF8, UTF8Sig, UTF16, Latin1}
	if len(order) != len(want) {
		t.Fatalf("BuildAttemptOrder length = %d, want %d (%v)", len(order), len(want), order)
	}
	for i, w := range want {
		if order[i] != w {
			t.Fatalf("BuildAttemptOrder[%d] = %q, want %q (%v)", i, order[i], w, order)
		}
	}
}

func TestDecodeStrictUTF8RoundTrip(t *testing.T) {
	text := "héllo, 世界"
	res := Decode([]byte(text), []string{UTF8}, false)
	if !res.OK || res.Text != text || res.Encoding != UTF8 {
		t.Fatalf("Decode(utf-8) = %+v, want round-trip", res)
	}
}

func TestDecodeStrictUTF8FailsOnInvalidSequenceWithoutReplace(t *testing.T) {
	buf := []byte{0x68, 0x69, 0xFF}
	res := Decode(buf, []string{UTF8}, false)
	if res.OK {
		t.Fatalf("Decode(invalid utf-8, no replace) = %+v, want failure", res)
	}
}

func TestDecodeFallsBackToReplacementOnExhaustion(t *testing.T) {
	buf := []byte{0x68, 0x69, 0xFF}
	res := Decode(buf, []string{UTF8}, true)
	if res.OK {
		t.Fatalf("replacement fallback should report OK=false, got %+v", res)
	}
	if res.Encoding != UTF8Replace || !res.UsedFallback {
		t.Fatalf("Decode replacement fallback = %+v, want utf-8-replace/used_fallback", res)
	}
	if !strings.Contains(res.Text, "hi") {
		t.Fatalf("expected surviving ASCII prefix in replaced text, got %q", res.Text)
	}
}

func TestDecodeUTF16WithBOMStripsMarker(t *testing.T) {
	buf := []byte{0xFF, 0xFE, 0x41, 0x00, 0x42, 0x00}
	res := Decode(buf, []string{UTF16}, false)
	if !res.OK || res.Text != "AB" || res.Encoding != UTF16LE {
		t.Fatalf("Decode(utf-16 BOM) = %+v, want \"AB\"/utf-16le", res)
	}
}

func TestDecodeLatin1AlwaysSucceeds(t *testing.T) {
	buf := []byte{0xE9, 0x41, 0xFF}
	res := Decode(buf, []string{Latin1}, false)
	if !res.OK || res.Encoding != Latin1 {
		t.Fatalf("Decode(latin-1) = %+v, want success", res)
	}
}

func TestProbeSingleByteEncodingAlwaysProposes(t *testing.T) {
	buf := make([]byte, 0, 64)
	for i := 0; i < 64; i++ {
		buf = append(buf, byte(0xA0+i%0x20))
	}
	label, conf := probeSingleByteEncoding(buf)
	if label != Windows1250 && label != ISO88592 {
		t.Fatalf("probeSingleByteEncoding label = %q, want windows-1250 or iso-8859-2", label)
	}
	if conf < 0 || conf > 0.93 {
		t.Fatalf("probeSingleByteEncoding confidence = %v, out of range", conf)
	}
}

// recordingLogger 捕获 Debug 调用，用于断言 Detect/Decode 确实把追踪信息
// 传给了调用方提供的 Logger 协作者。
type recordingLogger struct {
	messages []string
}

func (r *recordingLogger) Debug(msg string, args ...any) {
	r.messages = append(r.messages, msg)
}

func TestDetectEmitsDebugTracesToProvidedLogger(t *testing.T) {
	rec := &recordingLogger{}
	result := Detect([]byte("the quick brown fox"), rec)
	if result.Encoding != UTF8 {
		t.Fatalf("Detect(ascii) = %+v, want utf-8", result)
	}
	if len(rec.messages) == 0 {
		t.Fatalf("expected Detect to emit debug traces to the provided Logger, got none")
	}
}

func TestDetectWithNilLoggerIsSilentAndSafe(t *testing.T) {
	result := Detect([]byte("the quick brown fox"))
	if result.Encoding != UTF8 {
		t.Fatalf("Detect(ascii, no logger) = %+v, want utf-8", result)
	}
}

func TestDecodeEmitsDebugTracesToProvidedLogger(t *testing.T) {
	rec := &recordingLogger{}
	res := Decode([]byte("hello"), []string{UTF8}, false, rec)
	if !res.OK {
		t.Fatalf("Decode(utf-8) = %+v, want success", res)
	}
	if len(rec.messages) == 0 {
		t.Fatalf("expected Decode to emit debug traces to the provided Logger, got none")
	}
}
