package configurable

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// AttributeRecord describes one configurable attribute of a variant.
type AttributeRecord struct {
	AttributeID uint   `json:"attribute_id"`
	Label       string `json:"label"`
	Value       string `json:"value_index"`
}

// Variant pairs a child product id with its attribute records.
type Variant struct {
	ProductID  uint              `json:"product_id"`
	Attributes []AttributeRecord `json:"attributes"`
}

// VariantMap is an insertion-ordered mapping from child product id to the
// attribute records of that child. It encodes as a JSON object keyed by the
// decimal product id, keys in insertion order.
type VariantMap []Variant

// Get returns the records of the child with the given id.
func (m VariantMap) Get(productID uint) ([]AttributeRecord, bool) {
	for _, v := range m {
		if v.ProductID == productID {
			return v.Attributes, true
		}
	}
	return nil, false
}

// ProductIDs lists the child ids in order.
func (m VariantMap) ProductIDs() []uint {
	ids := make([]uint, len(m))
	for i, v := range m {
		ids[i] = v.ProductID
	}
	return ids
}

func (m VariantMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.FormatUint(uint64(v.ProductID), 10))
		buf.WriteString(`":`)

		records := v.Attributes
		if records == nil {
			records = []AttributeRecord{}
		}
		b, err := json.Marshal(records)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
