//go:build !skip_codec_shamaton_msgpack

package codec

import shamaton "github.com/shamaton/msgpack/v2"

func init() {
	Register("shamaton-msgpack", func() Serializer { return NewShamatonMsgpackCodec() })
}

type ShamatonMsgpackCodec struct{}

func NewShamatonMsgpackCodec() *ShamatonMsgpackCodec {
	return &ShamatonMsgpackCodec{}
}

func (mp *ShamatonMsgpackCodec) Name() string {
	return "shamaton-msgpack"
}

func (mp *ShamatonMsgpackCodec) Marshal(v interface{}) ([]byte, error) {
	return shamaton.Marshal(v)
}

func (mp *ShamatonMsgpackCodec) Unmarshal(data []byte, v interface{}) error {
	return shamaton.Unmarshal(data, v)
}
