package command

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"reflect"
)

// Button state travels inside the component custom id, so it is packed into a
// compact binary form: ints as int32, bools as one byte, strings with a one byte
// length prefix, pointers behind a presence flag and structs field by field.

var ErrEncodeOptions = errors.New("error while encoding options")

func writeValue(w *bytes.Buffer, value reflect.Value) error {
	switch value.Kind() {
	case reflect.Int:
		return binary.Write(w, binary.BigEndian, int32(value.Int()))
	case reflect.Bool:
		return binary.Write(w, binary.BigEndian, value.Bool())
	case reflect.String:
		s := value.String()
		if len(s) > 255 {
			return fmt.Errorf("string of length %d is too long: %w", len(s), ErrEncodeOptions)
		}
		w.WriteByte(uint8(len(s)))
		w.WriteString(s)
	case reflect.Pointer:
		present := !value.IsNil()
		err := binary.Write(w, binary.BigEndian, present)
		if err != nil {
			return fmt.Errorf("failed to write pointer marker: %w", err)
		}
		if present {
			return writeValue(w, value.Elem())
		}
	case reflect.Struct:
		for i := 0; i < value.NumField(); i++ {
			err := writeValue(w, value.Field(i))
			if err != nil {
				return fmt.Errorf("error while encoding field %q: %w", value.Type().Field(i).Name, err)
			}
		}
	default:
		return fmt.Errorf("unsupported kind %s: %w", value.Kind(), ErrEncodeOptions)
	}

	return nil
}

func marshal(w *bytes.Buffer, structure any) error {
	err := writeValue(w, reflect.ValueOf(structure))
	if err != nil {
		return fmt.Errorf("failed to marshal structure: %w", err)
	}

	return nil
}

func readValue(r io.Reader, value reflect.Value) error {
	if !value.CanSet() {
		return fmt.Errorf("cannot set value of type %s: %w", value.Type(), ErrDecodeOption)
	}

	switch value.Kind() {
	case reflect.Int:
		var v int32
		err := binary.Read(r, binary.BigEndian, &v)
		if err != nil {
			return fmt.Errorf("failed to read int value: %w", err)
		}
		value.SetInt(int64(v))
	case reflect.Bool:
		var v bool
		err := binary.Read(r, binary.BigEndian, &v)
		if err != nil {
			return fmt.Errorf("failed to read boolean value: %w", err)
		}
		value.SetBool(v)
	case reflect.String:
		var l uint8
		err := binary.Read(r, binary.BigEndian, &l)
		if err != nil {
			return fmt.Errorf("failed to read string length: %w", err)
		}
		buf := make([]byte, l)
		_, err = io.ReadFull(r, buf)
		if err != nil {
			return fmt.Errorf("failed to read string value: %w", err)
		}
		value.SetString(string(buf))
	case reflect.Pointer:
		var present bool
		err := binary.Read(r, binary.BigEndian, &present)
		if err != nil {
			return fmt.Errorf("failed to read pointer marker: %w", err)
		}
		if !present {
			value.Set(reflect.Zero(value.Type()))
			return nil
		}
		ptr := reflect.New(value.Type().Elem())
		err = readValue(r, ptr.Elem())
		if err != nil {
			return fmt.Errorf("error while decoding pointer element: %w", err)
		}
		value.Set(ptr)
	case reflect.Struct:
		for i := 0; i < value.NumField(); i++ {
			err := readValue(r, value.Field(i))
			if err != nil {
				return fmt.Errorf("error while decoding field %q: %w", value.Type().Field(i).Name, err)
			}
		}
	default:
		return fmt.Errorf("unsupported kind %s: %w", value.Kind(), ErrDecodeOption)
	}

	return nil
}

func unmarshal[T any](r io.Reader) (*T, error) {
	var structure T
	err := readValue(r, reflect.ValueOf(&structure).Elem())
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}

	return &structure, nil
}
