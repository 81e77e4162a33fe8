package xipnet

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/x/bsonx/bsoncore"
)

// BSON 编码：网络值存为 BSON string（规范化 CIDR 文本），
// 无效网络存为 BSON null。读取时 null 和 "" 映射零值，严格构造。

// MarshalBSONValue 实现 [bson.ValueMarshaler]。
func (n IPv4Network) MarshalBSONValue() (byte, []byte, error) {
	return marshalBSONString(n.IsValid(), n.String())
}

// UnmarshalBSONValue 实现 [bson.ValueUnmarshaler]。
func (n *IPv4Network) UnmarshalBSONValue(t byte, data []byte) error {
	if n == nil {
		return ErrNilReceiver
	}
	s, err := unmarshalBSONString(t, data)
	if err != nil {
		return err
	}
	return n.UnmarshalText([]byte(s))
}

// MarshalBSONValue 实现 [bson.ValueMarshaler]。
func (n IPv6Network) MarshalBSONValue() (byte, []byte, error) {
	return marshalBSONString(n.IsValid(), n.String())
}

// UnmarshalBSONValue 实现 [bson.ValueUnmarshaler]。
func (n *IPv6Network) UnmarshalBSONValue(t byte, data []byte) error {
	if n == nil {
		return ErrNilReceiver
	}
	s, err := unmarshalBSONString(t, data)
	if err != nil {
		return err
	}
	return n.UnmarshalText([]byte(s))
}

// MarshalBSONValue 实现 [bson.ValueMarshaler]。
func (n Network) MarshalBSONValue() (byte, []byte, error) {
	return marshalBSONString(n.IsValid(), n.String())
}

// UnmarshalBSONValue 实现 [bson.ValueUnmarshaler]，地址族由文本决定。
func (n *Network) UnmarshalBSONValue(t byte, data []byte) error {
	if n == nil {
		return ErrNilReceiver
	}
	s, err := unmarshalBSONString(t, data)
	if err != nil {
		return err
	}
	return n.UnmarshalText([]byte(s))
}

// marshalBSONString 把文本编码为 BSON string，无效值编码为 BSON null。
func marshalBSONString(valid bool, s string) (byte, []byte, error) {
	if !valid {
		return byte(bson.TypeNull), nil, nil
	}
	return byte(bson.TypeString), bsoncore.AppendString(nil, s), nil
}

// unmarshalBSONString 解出 BSON string 的文本。null 映射为空字符串。
func unmarshalBSONString(t byte, data []byte) (string, error) {
	switch bson.Type(t) {
	case bson.TypeNull:
		return "", nil
	case bson.TypeString:
		s, _, ok := bsoncore.ReadString(data)
		if !ok {
			return "", fmt.Errorf("%w: corrupt BSON string", ErrInvalidFormat)
		}
		return s, nil
	default:
		return "", fmt.Errorf("%w: unexpected BSON type %s", ErrInvalidFormat, bson.Type(t))
	}
}
