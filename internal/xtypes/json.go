package xtypes

import "encoding/json"

func marshalJSONString(s string) ([]byte, error) {
	return json.Marshal(s)
}

func unmarshalJSONString(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	return s, nil
}

func marshalJSONStrings(ss []string) ([]byte, error) {
	return json.Marshal(ss)
}

func unmarshalJSONStrings(data []byte) ([]string, error) {
	var ss []string
	if err := json.Unmarshal(data, &ss); err != nil {
		return nil, err
	}
	return ss, nil
}
