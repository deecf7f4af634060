package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registeredWhois = `   Domain Name: EXAMPLE.COM
   Registry Domain ID: 2336799_DOMAIN_COM-VRSN
   Registrar WHOIS Server: whois.iana.org
   Registrar URL: http://res-dom.iana.org
   Updated Date: 2024-08-14T07:01:34Z
   Creation Date: 1995-08-14T04:00:00Z
   Registry Expiry Date: 2025-08-13T04:00:00Z
   Registrar: RESERVED-Internet Assigned Numbers Authority
   Registrar IANA ID: 376
   Domain Status: clientDeleteProhibited https://icann.org/epp#clientDeleteProhibited
   Name Server: A.IANA-SERVERS.NET
   Name Server: B.IANA-SERVERS.NET
   DNSSEC: signedDelegation
>>> Last update of whois database: 2024-08-14T07:01:34Z <<<
`

const noMatchWhois = `No match for "THISISNOTAREALDOMAINZZZ.COM".
>>> Last update of whois database: 2024-08-14T07:02:11Z <<<
`

func TestParseRegistryResponse_RegisteredRecord(t *testing.T) {
	res := parseRegistryResponse(registeredWhois)

	assert.Equal(t, RegistryFound, res.Status)
	require.NotNil(t, res.Expiration)
	assert.Equal(t, 2025, res.Expiration.Year())
	assert.Contains(t, res.Registrar, "Internet Assigned Numbers Authority")
	assert.NoError(t, res.Err)
}

func TestParseRegistryResponse_NoMatch(t *testing.T) {
	res := parseRegistryResponse(noMatchWhois)

	assert.Equal(t, RegistryNotFound, res.Status)
	assert.Nil(t, res.Expiration)
	assert.Empty(t, res.Registrar)
}

func TestParseRegistryResponse_MalformedPayload(t *testing.T) {
	res := parseRegistryResponse("complete garbage that is not a whois response")

	assert.Equal(t, RegistryError, res.Status)
	assert.Error(t, res.Err)
}
