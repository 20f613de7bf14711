package xmp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const packetWithElement = `<?xpacket begin="" id="W5M0MpCehiHzreSzNTczkc9d"?>
<x:xmpmeta xmlns:x="adobe:ns:meta/">
 <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about="" xmlns:exif="http://ns.adobe.com/exif/1.0/">
   <exif:DateTimeOriginal>2023-06-15T14:30:00+02:00</exif:DateTimeOriginal>
  </rdf:Description>
 </rdf:RDF>
</x:xmpmeta>
<?xpacket end="w"?>`

const packetWithAttribute = `<x:xmpmeta xmlns:x="adobe:ns:meta/">
 <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about=""
    xmlns:xmp="http://ns.adobe.com/xap/1.0/"
    xmp:CreateDate="2021-01-02T10:00:00Z"/>
 </rdf:RDF>
</x:xmpmeta>`

func TestShotDateFromElement(t *testing.T) {
	// Simulate an XMP packet embedded mid-file
	data := append([]byte("\xff\xd8\xff\xe1 some binary "), []byte(packetWithElement)...)
	data = append(data, []byte(" trailing bytes")...)

	shot, ok := ShotDate(data)
	require.True(t, ok)

	want, err := time.Parse(time.RFC3339, "2023-06-15T14:30:00+02:00")
	require.NoError(t, err)
	assert.True(t, shot.Equal(want))
}

func TestShotDateFromAttribute(t *testing.T) {
	shot, ok := ShotDate([]byte(packetWithAttribute))
	require.True(t, ok)

	want, err := time.Parse(time.RFC3339, "2021-01-02T10:00:00Z")
	require.NoError(t, err)
	assert.True(t, shot.Equal(want))
}

func TestShotDateAbsent(t *testing.T) {
	_, ok := ShotDate([]byte("\x89PNG\r\n just pixels, no metadata"))
	assert.False(t, ok)
}

func TestShotDateTruncatedPacket(t *testing.T) {
	_, ok := ShotDate([]byte(`<x:xmpmeta xmlns:x="adobe:ns:meta/"><rdf:RDF`))
	assert.False(t, ok)
}
