package main

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

const netUseOutput = `New connections will be remembered.


Status       Local     Remote                    Network

-------------------------------------------------------------------------------
OK           Z:        \\fileserver\projects     Microsoft Windows Network
Unavailable  Y:        \\nas\renders             Microsoft Windows Network
             x:        \\backup\archive          Microsoft Windows Network
OK                     \\printserver\ipc$        Microsoft Windows Network
The command completed successfully.
`

func TestParseNetUse(t *testing.T) {
	mappings := ParseNetUse(netUseOutput)

	assert.Equal(t, map[string]string{
		"Z:": `\\fileserver\projects`,
		"Y:": `\\nas\renders`,
		"X:": `\\backup\archive`,
	}, mappings)
}

func TestParseNetUseEmpty(t *testing.T) {
	assert.Empty(t, ParseNetUse("There are no entries in the list.\n"))
}

func TestResolveMappedDrive(t *testing.T) {
	mappings := ParseNetUse(netUseOutput)

	assert.Equal(t, `\\fileserver\projects\ProjectA\SEQ010`, resolveMappedDrive(`Z:\ProjectA\SEQ010`, mappings))
	assert.Equal(t, `\\nas\renders\out`, resolveMappedDrive(`y:\out`, mappings))
	assert.Equal(t, `C:\local\ProjectA`, resolveMappedDrive(`C:\local\ProjectA`, mappings))
	assert.Equal(t, "/mnt/projects", resolveMappedDrive("/mnt/projects", mappings))
	assert.Equal(t, "Z", resolveMappedDrive("Z", mappings))
}
