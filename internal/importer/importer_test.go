package importer_test

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/book"
	"github.com/tartampluch/go-contacts/internal/importer"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the network layer for unit tests using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the importer.Fetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// -----------------------------------------------------------------------------
// Test Cases
// -----------------------------------------------------------------------------

const sampleVCards = `BEGIN:VCARD
VERSION:4.0
FN:John Doe
TEL:123-456-7890
TEL;TYPE=work:(555) 555-5555
BDAY:1985-11-02
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Jane Roe
TEL:+33 1 23 45 67 89
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Compact
TEL:9876543210
BDAY:19900615
END:VCARD`

func writeTempVCF(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "contacts_*.vcf")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

func TestImportFile_Success(t *testing.T) {
	path := writeTempVCF(t, sampleVCards)
	b := book.New()

	count, err := importer.New().ImportFile(context.Background(), path, b)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// John: both phones normalize to ten digits, birthday parsed.
	john := b.Find("John Doe")
	require.NotNil(t, john)
	phones := john.Phones()
	require.Len(t, phones, 2)
	assert.Equal(t, "1234567890", phones[0].String())
	assert.Equal(t, "5555555555", phones[1].String())
	require.NotNil(t, john.Birthday())
	assert.Equal(t, "02.11.1985", john.Birthday().String())

	// Jane: the international number has eleven digits after normalization
	// and is skipped; the record itself survives.
	jane := b.Find("Jane Roe")
	require.NotNil(t, jane)
	assert.Empty(t, jane.Phones())
	assert.Nil(t, jane.Birthday())

	// Compact: basic-format BDAY is accepted too.
	compact := b.Find("Compact")
	require.NotNil(t, compact)
	require.NotNil(t, compact.Birthday())
	assert.Equal(t, "15.06.1990", compact.Birthday().String())
}

func TestImportFile_MissingFile(t *testing.T) {
	count, err := importer.New().ImportFile(context.Background(), "/nonexistent/contacts.vcf", book.New())
	assert.Error(t, err)
	assert.Zero(t, count)
}

// TestImportFile_ReplacesExisting verifies imported cards follow the same
// replace-on-duplicate rule as manual adds.
func TestImportFile_ReplacesExisting(t *testing.T) {
	b := book.New()
	rec, err := book.NewRecord("John Doe")
	require.NoError(t, err)
	require.NoError(t, rec.AddPhone("0000000000"))
	b.Add(rec)

	path := writeTempVCF(t, sampleVCards)
	_, err = importer.New().ImportFile(context.Background(), path, b)
	require.NoError(t, err)

	john := b.Find("John Doe")
	require.NotNil(t, john)
	_, hasOld := john.FindPhone("0000000000")
	assert.False(t, hasOld, "Import replaces the record wholesale")
}

// TestImportFile_SkipsUnnamedAndTruncated checks skip-and-continue behavior:
// unnamed cards and year-less BDAY values are dropped without aborting.
func TestImportFile_SkipsUnnamedAndTruncated(t *testing.T) {
	content := `BEGIN:VCARD
VERSION:4.0
TEL:1234567890
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Partial
TEL:1234567890
BDAY:--06-15
END:VCARD`
	path := writeTempVCF(t, content)
	b := book.New()

	count, err := importer.New().ImportFile(context.Background(), path, b)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "Only the named card is imported")

	partial := b.Find("Partial")
	require.NotNil(t, partial)
	assert.Nil(t, partial.Birthday(), "Truncated BDAY values have no complete date to store")
}

func TestImportURL_Success(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, "https://example.com/book.vcf", "alice", "s3cret").
		Return(io.NopCloser(strings.NewReader(sampleVCards)), nil)

	b := book.New()
	im := &importer.Importer{Fetcher: mockFetcher}

	count, err := im.ImportURL(context.Background(), "https://example.com/book.vcf", "alice", "s3cret", b)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NotNil(t, b.Find("John Doe"))

	mockFetcher.AssertExpectations(t)
}

func TestImportURL_FetchError(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	im := &importer.Importer{Fetcher: mockFetcher}
	count, err := im.ImportURL(context.Background(), "https://example.com/book.vcf", "", "", book.New())

	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, count)
}

func TestImport_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := writeTempVCF(t, sampleVCards)
	_, err := importer.New().ImportFile(ctx, path, book.New())
	assert.ErrorIs(t, err, context.Canceled)
}
