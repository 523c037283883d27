package alias

import (
	"testing"

	"amfkit/errs"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type service struct {
	name  string
	level int
}

func (s *service) Name() string { return s.name }
func (s *service) SetName(n string) { s.name = n }
func (s *service) GetLevel() int { return s.level }
func (s *service) Level(int) {}
func (s service) Call(method string) {}
func (s *service) Ping() error { return nil }
func (s *service) Token() string { return "" }
func (s *service) Accessors() []string { return []string{"Token"} }
func (s *service) FullClassName() string { return "com.example.Service" }

func TestDescribeType(t *testing.T) {
	desc, err := DescribeType(&service{})
	require.NoError(t, err)
	require.Equal(t, "com.example::Service", desc.QualifiedName)
	require.Equal(t, []string{"Call", "Level", "Ping"}, desc.MethodNames)

	byValue, err := DescribeType(service{})
	require.NoError(t, err)
	require.Equal(t, desc, byValue)
}

func TestDescribeType_NoMethods(t *testing.T) {
	desc, err := DescribeType(Foo{})
	require.NoError(t, err)
	require.Equal(t, fooName, desc.QualifiedName)
	require.Empty(t, desc.MethodNames)

	_, err = DescribeType(nil)
	require.True(t, errors.Is(err, errs.ErrInvalidArgument))
}
