package marshal

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		name    string
		want    string
		wantErr bool
	}{
		"empty defaults to bytes": {name: "", want: "BytesType"},
		"short name":              {name: "LongType", want: "LongType"},
		"qualified name": {
			name: "org.apache.cassandra.db.marshal.TimeUUIDType",
			want: "TimeUUIDType",
		},
		"unknown": {name: "IntegerType", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			got, err := Get(tc.name)
			if tc.wantErr {
				req.Error(err)
				return
			}
			req.NoError(err)
			req.Equal(tc.want, got.Name())
		})
	}
}

func TestLongType(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	lt := LongType{}

	req.Equal(-1, lt.Compare(LongBytes(-5), LongBytes(3)))
	req.Equal(1, lt.Compare(LongBytes(10), LongBytes(9)))
	req.Equal(0, lt.Compare(LongBytes(7), LongBytes(7)))
	req.Equal(-1, lt.Compare(nil, LongBytes(-100)))

	req.NoError(lt.Validate(nil))
	req.NoError(lt.Validate(LongBytes(1)))
	err := lt.Validate([]byte("abc"))
	req.Error(err)
	req.True(IsInvalidValue(err))

	v, err := BytesLong(LongBytes(68))
	req.NoError(err)
	req.Equal(int64(68), v)
	req.Equal("68", lt.GetString(LongBytes(68)))
}

func TestTimeUUIDType(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	tt := TimeUUIDType{}

	first, err := uuid.NewUUID()
	req.NoError(err)
	time.Sleep(time.Millisecond)
	second, err := uuid.NewUUID()
	req.NoError(err)

	req.Equal(-1, tt.Compare(first[:], second[:]))
	req.Equal(1, tt.Compare(second[:], first[:]))
	req.Equal(0, tt.Compare(first[:], first[:]))

	req.NoError(tt.Validate(first[:]))
	random := uuid.New()
	req.Error(tt.Validate(random[:]))
	req.Error(tt.Validate([]byte("short")))
}

func TestLexicalUUIDType(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	lt := LexicalUUIDType{}

	low := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	high := uuid.MustParse("00000000-0000-0001-0000-000000000000")
	negative := uuid.MustParse("ffffffff-ffff-ffff-0000-000000000000")

	req.Equal(-1, lt.Compare(low[:], high[:]))
	req.Equal(-1, lt.Compare(negative[:], low[:]))
	req.Equal(low.String(), lt.GetString(low[:]))
}

func TestTextTypes(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		typ     AbstractType
		value   []byte
		wantErr bool
	}{
		"ascii ok":        {typ: AsciiType{}, value: []byte("hello")},
		"ascii high byte": {typ: AsciiType{}, value: []byte{0x80}, wantErr: true},
		"utf8 ok":         {typ: UTF8Type{}, value: []byte("héllo")},
		"utf8 broken":     {typ: UTF8Type{}, value: []byte{0xff, 0xfe}, wantErr: true},
		"bytes anything":  {typ: BytesType{}, value: []byte{0xff}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := tc.typ.Validate(tc.value)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
