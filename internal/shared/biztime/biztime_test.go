package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { MustInit("UTC") })

	require.NoError(t, Init("Asia/Shanghai"))
	assert.Equal(t, "Asia/Shanghai", Location().String())

	require.NoError(t, Init(""))
	assert.Equal(t, "UTC", Location().String())

	assert.Error(t, Init("Mars/Olympus_Mons"))
}

func TestNow_InBusinessZone(t *testing.T) {
	t.Cleanup(func() { MustInit("UTC") })
	MustInit("Asia/Shanghai")

	assert.Equal(t, "Asia/Shanghai", Now().Location().String())
	assert.Equal(t, time.UTC, NowUTC().Location())
}

func TestParseDate_BusinessMidnight(t *testing.T) {
	t.Cleanup(func() { MustInit("UTC") })
	MustInit("Asia/Shanghai")

	d, err := ParseDate("2025-05-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 11, 16, 0, 0, 0, time.UTC), d.UTC())
}

func TestParseDate(t *testing.T) {
	t.Cleanup(func() { MustInit("UTC") })
	MustInit("UTC")

	d, err := ParseDate("2025-05-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("12/05/2025")
	assert.Error(t, err)
}
