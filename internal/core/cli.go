package core

import (
	"github.com/alecthomas/kong"

	"github.com/pngme/pngme/internal/chunk"
	"github.com/pngme/pngme/internal/commands"
)

type cli struct {
	Version kong.VersionFlag `help:"print version"`
	Conf    string           `help:"path to a config file. The default is pngme.yml." placeholder:"PATH"`

	Encode encodeCmd `cmd:"" help:"Encode a message into a PNG file."`
	Decode decodeCmd `cmd:"" help:"Decode a message stored in a PNG file."`
	Remove removeCmd `cmd:"" help:"Remove a message from a PNG file."`
	Print  printCmd  `cmd:"" help:"Print a list of PNG chunks that can be searched for messages."`
}

type encodeCmd struct {
	FilePath  string     `arg:"" help:"PNG file."`
	ChunkType chunk.Type `short:"c" required:"" help:"Chunk type (4 letters)."`
	Message   string     `short:"m" required:"" help:"Message to hide."`
	Output    string     `short:"o" help:"Output file. The default is to overwrite the input file."`
}

func (c *encodeCmd) Run(cmds *commands.Commands) error {
	return cmds.Encode(c.FilePath, c.ChunkType, c.Message, c.Output)
}

type decodeCmd struct {
	FilePath  string     `arg:"" help:"PNG file."`
	ChunkType chunk.Type `short:"c" required:"" help:"Chunk type (4 letters)."`
}

func (c *decodeCmd) Run(cmds *commands.Commands) error {
	return cmds.Decode(c.FilePath, c.ChunkType)
}

type removeCmd struct {
	FilePath  string     `arg:"" help:"PNG file."`
	ChunkType chunk.Type `short:"c" required:"" help:"Chunk type (4 letters)."`
}

func (c *removeCmd) Run(cmds *commands.Commands) error {
	return cmds.Remove(c.FilePath, c.ChunkType)
}

type printCmd struct {
	FilePath string `arg:"" help:"PNG file."`
}

func (c *printCmd) Run(cmds *commands.Commands) error {
	return cmds.Print(c.FilePath)
}
