package opengl

// Fixed texture unit assignments shared by every shader in the engine.
// Material textures occupy 0-4, environment maps 5-7, and the pipeline
// reserves 8-11 for shadow, HDR, bloom and grading inputs.
const (
	SlotAlbedo            = 0
	SlotNormal            = 1
	SlotMetallicRoughness = 2
	SlotAO                = 3
	SlotEmissive          = 4
	SlotIrradiance        = 5
	SlotPrefiltered       = 6
	SlotBRDFLUT           = 7
	SlotShadowMap         = 8
	SlotHDRBuffer         = 9
	SlotBloom             = 10
	SlotColorGradingLUT   = 11
	SlotCustom0           = 12
	SlotCustom1           = 13
	SlotCustom2           = 14
	SlotCustom3           = 15
)
