package render

// Shader sources for the fixed pipeline stages: shadow depth, bloom
// extract/blur, and the final tone-mapping composite. All fullscreen passes
// share one vertex shader that emits a single oversized triangle from
// gl_VertexID, so no vertex buffer is ever bound.

// fullscreenVertexSrc is a fullscreen triangle via gl_VertexID (no VBO needed).
const fullscreenVertexSrc = `
#version 410 core
out vec2 v_UV;
void main() {
    const vec2 pos[3] = vec2[3](
        vec2(-1.0, -1.0),
        vec2( 3.0, -1.0),
        vec2(-1.0,  3.0)
    );
    gl_Position = vec4(pos[gl_VertexID], 0.0, 1.0);
    v_UV        = pos[gl_VertexID] * 0.5 + 0.5;
}
` + "\x00"

// depthVertexSrc is the position-only transform into light clip space for the
// shadow map. Instanced draws use the same grid fan-out as the lit shader so
// instance copies cast shadows where they are drawn.
const depthVertexSrc = `
#version 410 core
layout(location = 0) in vec3 a_Position;

uniform mat4 u_LightSpaceMatrix;
uniform mat4 u_Model;

void main() {
    vec4 worldPos = u_Model * vec4(a_Position, 1.0);
    worldPos.xyz += vec3(float(gl_InstanceID % 8) * 2.5, 0.0, float(gl_InstanceID / 8) * 2.5);
    gl_Position = u_LightSpaceMatrix * worldPos;
}
` + "\x00"

// depthFragmentSrc writes to a depth-only target, nothing to write.
const depthFragmentSrc = `
#version 410 core
void main() {
}
` + "\x00"

// bloomExtractFragmentSrc is the soft-threshold bright pass. The knee widens the
// cut-off into a quadratic ramp so pixels near the threshold fade in instead
// of popping.
const bloomExtractFragmentSrc = `
#version 410 core
in  vec2 v_UV;
out vec4 o_Color;

uniform sampler2D u_HDRBuffer;
uniform float     u_Threshold;
uniform float     u_Knee;

void main() {
    vec3  color      = texture(u_HDRBuffer, v_UV).rgb;
    float brightness = max(max(color.r, color.g), color.b);

    float soft = brightness - u_Threshold + u_Knee;
    soft = clamp(soft, 0.0, 2.0 * u_Knee);
    soft = soft * soft / (4.0 * u_Knee + 0.0001);

    float contribution = max(soft, brightness - u_Threshold);
    contribution /= max(brightness, 0.0001);

    o_Color = vec4(color * contribution, 1.0);
}
` + "\x00"

// bloomBlurFragmentSrc is a single-axis 9-tap Gaussian blur. One horizontal and
// one vertical invocation together give a separable 9x9 kernel.
const bloomBlurFragmentSrc = `
#version 410 core
in  vec2 v_UV;
out vec4 o_Color;

uniform sampler2D u_Image;
uniform bool      u_Horizontal;
uniform vec2      u_TextureSize;

void main() {
    const float weights[5] = float[](0.227027, 0.1945946, 0.1216216, 0.054054, 0.016216);

    vec2 texel = 1.0 / u_TextureSize;
    vec2 dir   = u_Horizontal ? vec2(texel.x, 0.0) : vec2(0.0, texel.y);

    vec3 result = texture(u_Image, v_UV).rgb * weights[0];
    for (int i = 1; i < 5; i++) {
        result += texture(u_Image, v_UV + dir * float(i)).rgb * weights[i];
        result += texture(u_Image, v_UV - dir * float(i)).rgb * weights[i];
    }
    o_Color = vec4(result, 1.0);
}
` + "\x00"

// tonemapFragmentSrc is the final composite to the default framebuffer: bloom add,
// tone-mapping operator selected by u_ToneMappingMode, optional 3D-LUT color
// grading, then gamma encode. Exposure pre-multiplies the HDR color for every
// operator; the white point only shapes Reinhard-Extended.
const tonemapFragmentSrc = `
#version 410 core
in  vec2 v_UV;
out vec4 o_Color;

uniform sampler2D u_HDRBuffer;        // slot 9
uniform sampler2D u_BloomTexture;     // slot 10
uniform sampler3D u_ColorGradingLUT;  // slot 11

uniform int   u_ToneMappingMode; // 0 Reinhard, 1 Reinhard-Extended, 2 Exposure, 3 ACES, 4 Uncharted2
uniform float u_Exposure;
uniform float u_Gamma;
uniform float u_WhitePoint;

uniform bool  u_EnableBloom;
uniform float u_BloomIntensity;

uniform bool  u_EnableColorGrading;
uniform float u_LUTContribution;
uniform float u_Saturation;
uniform float u_Contrast;
uniform float u_Brightness;

vec3 reinhard(vec3 c) {
    return c / (1.0 + c);
}

vec3 reinhardExtended(vec3 c) {
    vec3 numerator = c * (1.0 + c / (u_WhitePoint * u_WhitePoint));
    return numerator / (1.0 + c);
}

vec3 exposureMap(vec3 c) {
    return vec3(1.0) - exp(-c);
}

vec3 acesFilm(vec3 c) {
    return clamp((c * (2.51 * c + 0.03)) / (c * (2.43 * c + 0.59) + 0.14), 0.0, 1.0);
}

vec3 uncharted2Partial(vec3 c) {
    float a = 0.15, b = 0.50, cc = 0.10, d = 0.20, e = 0.02, f = 0.30;
    return ((c * (a * c + cc * b) + d * e) / (c * (a * c + b) + d * f)) - e / f;
}

vec3 uncharted2(vec3 c) {
    vec3 curr       = uncharted2Partial(c * 2.0);
    vec3 whiteScale = vec3(1.0) / uncharted2Partial(vec3(11.2));
    return curr * whiteScale;
}

vec3 toneMap(vec3 c) {
    if (u_ToneMappingMode == 0) return reinhard(c);
    if (u_ToneMappingMode == 1) return reinhardExtended(c);
    if (u_ToneMappingMode == 2) return exposureMap(c);
    if (u_ToneMappingMode == 4) return uncharted2(c);
    return acesFilm(c);
}

vec3 grade(vec3 c) {
    float luma = dot(c, vec3(0.2126, 0.7152, 0.0722));
    c = mix(vec3(luma), c, u_Saturation);
    c = (c - 0.5) * u_Contrast + 0.5 + u_Brightness;
    c = clamp(c, 0.0, 1.0);

    vec3 graded = texture(u_ColorGradingLUT, c).rgb;
    return mix(c, graded, u_LUTContribution);
}

void main() {
    vec3 hdr = texture(u_HDRBuffer, v_UV).rgb;

    if (u_EnableBloom) {
        hdr += texture(u_BloomTexture, v_UV).rgb * u_BloomIntensity;
    }

    vec3 mapped = toneMap(hdr * u_Exposure);

    if (u_EnableColorGrading) {
        mapped = grade(mapped);
    }

    mapped  = pow(max(mapped, vec3(0.0)), vec3(1.0 / u_Gamma));
    o_Color = vec4(mapped, 1.0);
}
` + "\x00"
