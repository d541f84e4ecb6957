package material

// GLSL sources for the default lit (PBR) and outline shaders. Kept as
// embedded strings so the engine has no runtime asset dependencies; the
// NUL terminators are required by the GL string upload.

const defaultLitVertexSrc = `
#version 410 core
layout(location = 0) in vec3 a_Position;
layout(location = 1) in vec3 a_Normal;
layout(location = 2) in vec2 a_UV;
layout(location = 3) in vec4 a_Color;

uniform mat4 u_Model;
uniform mat4 u_View;
uniform mat4 u_Projection;
uniform mat3 u_NormalMatrix;
uniform mat4 u_LightSpaceMatrix;

out vec3 v_WorldPos;
out vec3 v_Normal;
out vec2 v_UV;
out vec4 v_Color;
out vec4 v_LightSpacePos;

void main() {
    vec4 worldPos = u_Model * vec4(a_Position, 1.0);
    // Instanced draws fan out into an 8-wide grid; instance 0 is the
    // object's own placement.
    worldPos.xyz += vec3(float(gl_InstanceID % 8) * 2.5,
                         0.0,
                         float(gl_InstanceID / 8) * 2.5);
    v_WorldPos      = worldPos.xyz;
    v_Normal        = u_NormalMatrix * a_Normal;
    v_UV            = a_UV;
    v_Color         = a_Color;
    v_LightSpacePos = u_LightSpaceMatrix * worldPos;
    gl_Position     = u_Projection * u_View * worldPos;
}
` + "\x00"

const defaultLitFragmentSrc = `
#version 410 core

#define MAX_LIGHTS 4
const float PI = 3.14159265359;

in vec3 v_WorldPos;
in vec3 v_Normal;
in vec2 v_UV;
in vec4 v_Color;
in vec4 v_LightSpacePos;

out vec4 o_Color;

// Surface
uniform vec3  u_Albedo;
uniform float u_Metallic;
uniform float u_Roughness;
uniform float u_AO;
uniform float u_Alpha;

uniform bool      u_UseAlbedoTexture;
uniform sampler2D u_AlbedoTexture;
uniform bool      u_UseNormalMap;
uniform sampler2D u_NormalTexture;
uniform bool      u_UseMetallicRoughnessTexture;
uniform sampler2D u_MetallicRoughnessTexture;
uniform bool      u_UseAOTexture;
uniform sampler2D u_AOTexture;
uniform bool      u_UseEmissiveTexture;
uniform sampler2D u_EmissiveTexture;

// Camera
uniform vec3 u_ViewPos;

// Punctual lights
uniform int  u_LightCount;
uniform vec3 u_LightPositions[MAX_LIGHTS];
uniform vec3 u_LightColors[MAX_LIGHTS];

uniform bool u_UseDirLight;
uniform vec3 u_DirLightDirection;
uniform vec3 u_DirLightColor;

// Shadows (directional light only)
uniform bool      u_UseShadows;
uniform sampler2D u_ShadowMap;

// Image-based lighting
uniform bool        u_UseIBL;
uniform samplerCube u_IrradianceMap;
uniform samplerCube u_PrefilteredMap;
uniform sampler2D   u_BRDF_LUT;
uniform float       u_MaxReflectionLOD;
uniform float       u_IBLIntensity;

// Ambient fill from below the horizon
uniform vec3  u_LowerHemisphereColor;
uniform float u_LowerHemisphereIntensity;

// Cook-Torrance terms

float distributionGGX(vec3 N, vec3 H, float roughness) {
    float a  = roughness * roughness;
    float a2 = a * a;
    float NdotH  = max(dot(N, H), 0.0);
    float denom  = NdotH * NdotH * (a2 - 1.0) + 1.0;
    return a2 / (PI * denom * denom);
}

float geometrySchlickGGX(float NdotV, float roughness) {
    float r = roughness + 1.0;
    float k = (r * r) / 8.0;
    return NdotV / (NdotV * (1.0 - k) + k);
}

float geometrySmith(vec3 N, vec3 V, vec3 L, float roughness) {
    return geometrySchlickGGX(max(dot(N, V), 0.0), roughness)
         * geometrySchlickGGX(max(dot(N, L), 0.0), roughness);
}

vec3 fresnelSchlick(float cosTheta, vec3 F0) {
    return F0 + (1.0 - F0) * pow(clamp(1.0 - cosTheta, 0.0, 1.0), 5.0);
}

vec3 fresnelSchlickRoughness(float cosTheta, vec3 F0, float roughness) {
    return F0 + (max(vec3(1.0 - roughness), F0) - F0)
              * pow(clamp(1.0 - cosTheta, 0.0, 1.0), 5.0);
}

// Normal mapping without vertex tangents: derive the tangent frame from
// screen-space derivatives.
vec3 perturbNormal(vec3 N, vec3 viewVec, vec2 uv) {
    vec3 tangentNormal = texture(u_NormalTexture, uv).xyz * 2.0 - 1.0;

    vec3 dp1  = dFdx(viewVec);
    vec3 dp2  = dFdy(viewVec);
    vec2 duv1 = dFdx(uv);
    vec2 duv2 = dFdy(uv);

    vec3 dp2perp = cross(dp2, N);
    vec3 dp1perp = cross(N, dp1);
    vec3 T = dp2perp * duv1.x + dp1perp * duv2.x;
    vec3 B = dp2perp * duv1.y + dp1perp * duv2.y;

    float invmax = inversesqrt(max(dot(T, T), dot(B, B)));
    mat3 TBN = mat3(T * invmax, B * invmax, N);
    return normalize(TBN * tangentNormal);
}

// 3x3 PCF shadow lookup. Returns the fraction of the surface in shadow.
float shadowFactor(vec3 N, vec3 L) {
    vec3 proj = v_LightSpacePos.xyz / v_LightSpacePos.w;
    proj = proj * 0.5 + 0.5;
    if (proj.z > 1.0) {
        return 0.0;
    }

    float bias = max(0.005 * (1.0 - dot(N, L)), 0.0005);
    vec2 texel = 1.0 / vec2(textureSize(u_ShadowMap, 0));

    float shadow = 0.0;
    for (int x = -1; x <= 1; ++x) {
        for (int y = -1; y <= 1; ++y) {
            float depth = texture(u_ShadowMap, proj.xy + vec2(x, y) * texel).r;
            shadow += proj.z - bias > depth ? 1.0 : 0.0;
        }
    }
    return shadow / 9.0;
}

vec3 lightContribution(vec3 radiance, vec3 L, vec3 N, vec3 V,
                       vec3 albedo, float metallic, float roughness, vec3 F0) {
    vec3 H = normalize(V + L);

    float NDF = distributionGGX(N, H, roughness);
    float G   = geometrySmith(N, V, L, roughness);
    vec3  F   = fresnelSchlick(max(dot(H, V), 0.0), F0);

    float NdotL = max(dot(N, L), 0.0);
    vec3 specular = (NDF * G * F)
                  / (4.0 * max(dot(N, V), 0.0) * NdotL + 0.0001);

    vec3 kD = (vec3(1.0) - F) * (1.0 - metallic);
    return (kD * albedo / PI + specular) * radiance * NdotL;
}

void main() {
    vec3 albedo = u_Albedo * v_Color.rgb;
    if (u_UseAlbedoTexture) {
        vec4 tex = texture(u_AlbedoTexture, v_UV);
        albedo *= pow(tex.rgb, vec3(2.2));
    }

    float metallic  = u_Metallic;
    float roughness = u_Roughness;
    if (u_UseMetallicRoughnessTexture) {
        vec3 mr = texture(u_MetallicRoughnessTexture, v_UV).rgb;
        roughness *= mr.g;
        metallic  *= mr.b;
    }

    float ao = u_AO;
    if (u_UseAOTexture) {
        ao *= texture(u_AOTexture, v_UV).r;
    }

    vec3 V = normalize(u_ViewPos - v_WorldPos);
    vec3 N = normalize(v_Normal);
    if (u_UseNormalMap) {
        N = perturbNormal(N, -V, v_UV);
    }

    vec3 F0 = mix(vec3(0.04), albedo, metallic);

    vec3 Lo = vec3(0.0);
    for (int i = 0; i < u_LightCount && i < MAX_LIGHTS; ++i) {
        vec3 toLight = u_LightPositions[i] - v_WorldPos;
        float dist = length(toLight);
        vec3 radiance = u_LightColors[i] / max(dist * dist, 0.0001);
        Lo += lightContribution(radiance, normalize(toLight), N, V,
                                albedo, metallic, roughness, F0);
    }

    if (u_UseDirLight) {
        vec3 L = normalize(-u_DirLightDirection);
        vec3 contrib = lightContribution(u_DirLightColor, L, N, V,
                                         albedo, metallic, roughness, F0);
        if (u_UseShadows) {
            contrib *= 1.0 - shadowFactor(N, L);
        }
        Lo += contrib;
    }

    // Ground bounce: fill light for surfaces facing downward.
    float downFacing = clamp(-N.y, 0.0, 1.0);
    vec3 hemisphere = u_LowerHemisphereColor * u_LowerHemisphereIntensity * downFacing;

    vec3 ambient;
    if (u_UseIBL) {
        vec3 F = fresnelSchlickRoughness(max(dot(N, V), 0.0), F0, roughness);
        vec3 kD = (1.0 - F) * (1.0 - metallic);

        vec3 irradiance = texture(u_IrradianceMap, N).rgb;
        vec3 diffuse = irradiance * albedo;

        vec3 R = reflect(-V, N);
        vec3 prefiltered = textureLod(u_PrefilteredMap, R,
                                      roughness * u_MaxReflectionLOD).rgb;
        vec2 brdf = texture(u_BRDF_LUT,
                            vec2(max(dot(N, V), 0.0), roughness)).rg;
        vec3 specular = prefiltered * (F * brdf.x + brdf.y);

        ambient = (kD * diffuse + specular) * u_IBLIntensity * ao
                + hemisphere * albedo * ao;
    } else {
        ambient = (vec3(0.03) + hemisphere) * albedo * ao;
    }

    vec3 color = ambient + Lo;
    if (u_UseEmissiveTexture) {
        color += texture(u_EmissiveTexture, v_UV).rgb;
    }

    o_Color = vec4(color, u_Alpha * v_Color.a);
}
` + "\x00"

const outlineVertexSrc = `
#version 410 core
layout(location = 0) in vec3 a_Position;

uniform mat4 u_Model;
uniform mat4 u_View;
uniform mat4 u_Projection;

void main() {
    gl_Position = u_Projection * u_View * u_Model * vec4(a_Position, 1.0);
}
` + "\x00"

const outlineFragmentSrc = `
#version 410 core
out vec4 o_Color;

uniform vec4 u_OutlineColor;

void main() {
    o_Color = u_OutlineColor;
}
` + "\x00"
